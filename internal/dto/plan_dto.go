// FILE: internal/dto/plan_dto.go
package dto

type PlanInfo struct {
	Name      string   `json:"name"`
	CvLimit   int      `json:"cvLimit"`
	Templates []string `json:"templates"`
}

type PlansResponse struct {
	Plans map[string]PlanInfo `json:"plans"`
}
