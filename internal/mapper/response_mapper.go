// FILE: internal/mapper/response_mapper.go
package mapper

import (
	"encoding/json"
	"time"

	"gulfcv-be/internal/constant"
	"gulfcv-be/internal/dto"
	"gulfcv-be/internal/entity"
)

// ToAgencyResponse normalizes an agency for API consumers: unknown template
// ids are dropped, the plan's default templates are merged back in, and
// missing plan metadata falls back to the catalog. Stored rows can predate a
// catalog change, so normalization happens on every read instead of once at
// write time.
func ToAgencyResponse(a *entity.Agency) *dto.AgencyResponse {
	if a == nil {
		return nil
	}
	plan, ok := constant.PlanByKey(a.Plan)
	if !ok {
		plan, _ = constant.PlanByKey(constant.PlanFree)
	}

	seen := make(map[string]bool)
	templates := make([]string, 0, len(a.Templates)+len(plan.Templates))
	for _, id := range a.Templates {
		if constant.IsKnownTemplate(id) && !seen[id] {
			seen[id] = true
			templates = append(templates, id)
		}
	}
	for _, id := range plan.Templates {
		if !seen[id] {
			seen[id] = true
			templates = append(templates, id)
		}
	}

	planName := a.PlanName
	if planName == "" {
		planName = plan.Name
	}
	status := a.SubscriptionStatus
	if status == "" {
		status = entity.SubscriptionActive
	}
	lastReset := a.LastResetMonth
	if lastReset == "" {
		lastReset = entity.MonthKey(time.Now())
	}

	return &dto.AgencyResponse{
		Id:                 a.Id,
		AgencyName:         a.AgencyName,
		Email:              a.Email,
		Plan:               a.Plan,
		PlanName:           planName,
		CvLimit:            a.CvLimit,
		CvsCreated:         a.CvsCreated,
		Templates:          templates,
		SubscriptionStatus: string(status),
		PaymentMethod:      a.PaymentMethod,
		PaymentReference:   a.PaymentReference,
		PaymentNote:        a.PaymentNote,
		LastResetMonth:     lastReset,
		Profile:            dto.AgencyProfilePayload(a.Profile),
		CreatedAt:          a.CreatedAt,
	}
}

func ToAgencyResponses(agencies []*entity.Agency) []*dto.AgencyResponse {
	out := make([]*dto.AgencyResponse, len(agencies))
	for i, a := range agencies {
		out[i] = ToAgencyResponse(a)
	}
	return out
}

func ToAdminResponse(a *entity.AdminUser) *dto.AdminResponse {
	if a == nil {
		return nil
	}
	return &dto.AdminResponse{
		Id:        a.Id,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// ToCvRecordListItem projects a record for the history list. Only the
// layout id is read out of the snapshot; the payload itself stays behind
// the detail endpoint.
func ToCvRecordListItem(r *entity.CvRecord) dto.CvRecordListItem {
	return dto.CvRecordListItem{
		Id:            r.Id,
		Source:        r.Source,
		CandidateName: fallbackDash(r.CandidateName),
		ReferenceNo:   fallbackDash(r.ReferenceNo),
		Layout:        snapshotLayout(r.Snapshot),
		CreatedAt:     r.CreatedAt,
	}
}

func ToCvRecordDetail(r *entity.CvRecord) *dto.CvRecordDetail {
	if r == nil {
		return nil
	}
	snapshot := r.Snapshot
	if len(snapshot) == 0 {
		snapshot = json.RawMessage("{}")
	}
	return &dto.CvRecordDetail{
		Id:            r.Id,
		Source:        r.Source,
		CandidateName: fallbackDash(r.CandidateName),
		ReferenceNo:   fallbackDash(r.ReferenceNo),
		Snapshot:      snapshot,
		CreatedAt:     r.CreatedAt,
	}
}

func fallbackDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func snapshotLayout(snapshot json.RawMessage) string {
	if len(snapshot) == 0 {
		return ""
	}
	var meta struct {
		Meta struct {
			Layout string `json:"layout"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(snapshot, &meta); err != nil {
		return ""
	}
	return meta.Meta.Layout
}
