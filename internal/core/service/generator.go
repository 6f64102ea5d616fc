package service

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

var (
	firstNames = []string{"Alice", "Bruno", "Carla", "Diego", "Elena", "Felix", "Greta", "Hugo", "Irene", "Jonas", "Karla", "Liam", "Marta", "Nadia", "Oscar", "Paula", "Quentin", "Rosa", "Simon", "Tania"}
	lastNames  = []string{"Alvarez", "Becker", "Castro", "Dumont", "Eriksen", "Ferrari", "Garcia", "Hoffmann", "Ibarra", "Jensen", "Keller", "Lopez", "Moreau", "Novak", "Olsen", "Pereira", "Quinn", "Rossi", "Silva", "Torres"}
	cities     = []string{"Madrid", "Berlin", "Lisbon", "Paris", "Oslo", "Vienna", "Prague", "Dublin", "Rome", "Warsaw"}
	countries  = []string{"ES", "DE", "PT", "FR", "NO", "AT", "CZ", "IE", "IT", "PL"}
	companies  = []string{"Acme Corp", "Globex", "Initech", "Umbrella Ltd", "Stark Industries", "Wayne Enterprises", "Hooli", "Vandelay Industries"}
	jobs       = []string{"Software Engineer", "Product Manager", "Data Analyst", "Designer", "Accountant", "Sales Executive", "HR Specialist", "Support Agent"}

	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate returns count random identity drafts suitable for bulk import:
// plausible profile data, a password within the import bounds, unique
// usernames and emails, and roughly one ADMIN in five.
func (s *UserService) Generate(count int) []domain.UserDraft {
	drafts := make([]domain.UserDraft, 0, count)
	for i := 0; i < count; i++ {
		drafts = append(drafts, randomDraft())
	}
	return drafts
}

func randomDraft() domain.UserDraft {
	first := pick(firstNames)
	last := pick(lastNames)
	handle := fmt.Sprintf("%s.%s%s", strings.ToLower(first), strings.ToLower(last), randomSuffix())

	role := domain.RoleUser
	if rand.IntN(5) == 0 {
		role = domain.RoleAdmin
	}

	return domain.UserDraft{
		FirstName:   first,
		LastName:    last,
		BirthDate:   randomBirthDate(),
		City:        pick(cities),
		Country:     pick(countries),
		Avatar:      fmt.Sprintf("https://avatars.example.com/%s.png", handle),
		Company:     pick(companies),
		JobPosition: pick(jobs),
		Mobile:      fmt.Sprintf("+34 6%02d %03d %03d", rand.IntN(100), rand.IntN(1000), rand.IntN(1000)),
		Username:    handle,
		Email:       handle + "@example.com",
		Password:    randomPassword(),
		Role:        role,
	}
}

func pick(values []string) string {
	return values[rand.IntN(len(values))]
}

// randomBirthDate yields a date between 18 and 65 years in the past.
func randomBirthDate() time.Time {
	years := 18 + rand.IntN(48)
	days := rand.IntN(365)
	return time.Now().UTC().AddDate(-years, 0, -days).Truncate(24 * time.Hour)
}

// randomPassword is 6 to 10 alphanumeric characters, matching the import bound.
func randomPassword() string {
	n := passwordMinLen + rand.IntN(passwordMaxLen-passwordMinLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = passwordAlphabet[rand.IntN(len(passwordAlphabet))]
	}
	return string(b)
}

// randomSuffix keeps generated usernames and emails collision-free across
// batches without consulting the store.
func randomSuffix() string {
	b := make([]byte, 3)
	if _, err := cryptorand.Read(b); err != nil {
		return fmt.Sprintf("%06x", time.Now().UnixNano()&0xFFFFFF)
	}
	return fmt.Sprintf("%06x", b)
}
