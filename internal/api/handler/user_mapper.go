package handler

import (
	"time"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

const birthDateLayout = "2006-01-02"

// toDraft converts a wire payload into a domain draft. An unparseable birth
// date is left at its zero value so the import engine marks only that record
// failed instead of rejecting the whole request.
func toDraft(p userDraftPayload) domain.UserDraft {
	var birthDate time.Time
	if p.BirthDate != "" {
		parsed, err := time.Parse(birthDateLayout, p.BirthDate)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, p.BirthDate)
		}
		if err == nil {
			birthDate = parsed
		}
	}

	return domain.UserDraft{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		BirthDate:   birthDate,
		City:        p.City,
		Country:     p.Country,
		Avatar:      p.Avatar,
		Company:     p.Company,
		JobPosition: p.JobPosition,
		Mobile:      p.Mobile,
		Username:    p.Username,
		Email:       p.Email,
		Password:    p.Password,
		Role:        p.Role,
	}
}

func toDraftPayload(d domain.UserDraft) userDraftPayload {
	return userDraftPayload{
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		BirthDate:   d.BirthDate.Format(birthDateLayout),
		City:        d.City,
		Country:     d.Country,
		Avatar:      d.Avatar,
		Company:     d.Company,
		JobPosition: d.JobPosition,
		Mobile:      d.Mobile,
		Username:    d.Username,
		Email:       d.Email,
		Password:    d.Password,
		Role:        d.Role,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   u.BirthDate.Format(birthDateLayout),
		City:        u.City,
		Country:     u.Country,
		Avatar:      u.Avatar,
		Company:     u.Company,
		JobPosition: u.JobPosition,
		Mobile:      u.Mobile,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
	}
}
