package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB-backed credential store gateway.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	BirthDate    time.Time          `bson:"birth_date"`
	City         string             `bson:"city"`
	Country      string             `bson:"country"`
	Avatar       string             `bson:"avatar"`
	Company      string             `bson:"company"`
	JobPosition  string             `bson:"job_position"`
	Mobile       string             `bson:"mobile"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func toDoc(u *domain.User) mongoUser {
	return mongoUser{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    u.BirthDate,
		City:         u.City,
		Country:      u.Country,
		Avatar:       u.Avatar,
		Company:      u.Company,
		JobPosition:  u.JobPosition,
		Mobile:       u.Mobile,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomain(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		BirthDate:    mu.BirthDate,
		City:         mu.City,
		Country:      mu.Country,
		Avatar:       mu.Avatar,
		Company:      mu.Company,
		JobPosition:  mu.JobPosition,
		Mobile:       mu.Mobile,
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		CreatedAt:    mu.CreatedAt,
	}
}

// FindByHandle locates a user whose username or email equals handle.
func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{{"username": handle}, {"email": handle}}}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by handle: %w", err)
	}
	return toDomain(mu), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(mu), nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return n > 0, nil
}

// Create inserts a single user, mapping a unique-index violation to ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// CreateAll persists the staged set inside a multi-document transaction: a
// mid-batch failure (including a unique-index race with a concurrent batch)
// rolls back every document, so the staged subset never lands partially.
func (r *UserRepository) CreateAll(ctx context.Context, users []*domain.User) ([]*domain.User, error) {
	if len(users) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, toDoc(u))
	}

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.coll.InsertMany(sc, docs)
	})
	if err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}

	created := make([]*domain.User, 0, len(users))
	insertedIDs := result.(*mongo.InsertManyResult).InsertedIDs
	for i, u := range users {
		c := *u
		if i < len(insertedIDs) {
			if oid, ok := insertedIDs[i].(primitive.ObjectID); ok {
				c.ID = oid.Hex()
			}
		}
		created = append(created, &c)
	}
	return created, nil
}

// EnsureIndexes creates the unique indexes backing the duplicate checks. They
// are the last line of defense against concurrent batches that both pass
// validation with the same new username or email.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
