// FILE: internal/service/plan_service.go
package service

import (
	"gulfcv-be/internal/constant"
	"gulfcv-be/internal/dto"
)

type IPlanService interface {
	Catalog() *dto.PlansResponse
}

type planService struct{}

func NewPlanService() IPlanService {
	return &planService{}
}

func (s *planService) Catalog() *dto.PlansResponse {
	plans := constant.Plans()
	out := make(map[string]dto.PlanInfo, len(plans))
	for key, p := range plans {
		out[key] = dto.PlanInfo{
			Name:      p.Name,
			CvLimit:   p.CvLimit,
			Templates: p.Templates,
		}
	}
	return &dto.PlansResponse{Plans: out}
}
