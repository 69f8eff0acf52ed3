// FILE: internal/mapper/agency_mapper.go
package mapper

import (
	"encoding/json"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/model"
)

type AgencyMapper struct{}

func NewAgencyMapper() *AgencyMapper {
	return &AgencyMapper{}
}

func (m *AgencyMapper) ToEntity(a *model.Agency) *entity.Agency {
	if a == nil {
		return nil
	}
	var templates []string
	if len(a.Templates) > 0 {
		// Malformed rows fall back to an empty list; normalization at the
		// response layer re-adds the plan defaults.
		_ = json.Unmarshal(a.Templates, &templates)
	}
	var profile entity.AgencyProfile
	if len(a.Profile) > 0 {
		_ = json.Unmarshal(a.Profile, &profile)
	}
	return &entity.Agency{
		Id:                 a.Id,
		AgencyName:         a.AgencyName,
		Email:              a.Email,
		PasswordHash:       a.PasswordHash,
		Plan:               a.Plan,
		PlanName:           a.PlanName,
		CvLimit:            a.CvLimit,
		CvsCreated:         a.CvsCreated,
		Templates:          templates,
		SubscriptionStatus: entity.SubscriptionStatus(a.SubscriptionStatus),
		PaymentMethod:      a.PaymentMethod,
		PaymentReference:   a.PaymentReference,
		PaymentNote:        a.PaymentNote,
		LastResetMonth:     a.LastResetMonth,
		Profile:            profile,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (m *AgencyMapper) ToModel(a *entity.Agency) *model.Agency {
	if a == nil {
		return nil
	}
	templates := a.Templates
	if templates == nil {
		templates = []string{}
	}
	templatesJSON, _ := json.Marshal(templates)
	profileJSON, _ := json.Marshal(a.Profile)
	return &model.Agency{
		Id:                 a.Id,
		AgencyName:         a.AgencyName,
		Email:              a.Email,
		PasswordHash:       a.PasswordHash,
		Plan:               a.Plan,
		PlanName:           a.PlanName,
		CvLimit:            a.CvLimit,
		CvsCreated:         a.CvsCreated,
		Templates:          templatesJSON,
		SubscriptionStatus: string(a.SubscriptionStatus),
		PaymentMethod:      a.PaymentMethod,
		PaymentReference:   a.PaymentReference,
		PaymentNote:        a.PaymentNote,
		LastResetMonth:     a.LastResetMonth,
		Profile:            profileJSON,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (m *AgencyMapper) ToEntities(agencies []*model.Agency) []*entity.Agency {
	entities := make([]*entity.Agency, len(agencies))
	for i, a := range agencies {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

// Password reset token mappers

func (m *AgencyMapper) PasswordResetToEntity(t *model.PasswordReset) *entity.PasswordResetToken {
	if t == nil {
		return nil
	}
	return &entity.PasswordResetToken{
		Id:        t.Id,
		AgencyId:  t.AgencyId,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		UsedAt:    t.UsedAt,
		CreatedAt: t.CreatedAt,
	}
}

func (m *AgencyMapper) PasswordResetToModel(t *entity.PasswordResetToken) *model.PasswordReset {
	if t == nil {
		return nil
	}
	return &model.PasswordReset{
		Id:        t.Id,
		AgencyId:  t.AgencyId,
		TokenHash: t.TokenHash,
		ExpiresAt: t.ExpiresAt,
		UsedAt:    t.UsedAt,
		CreatedAt: t.CreatedAt,
	}
}
