// FILE: internal/mapper/cv_record_mapper.go
package mapper

import (
	"encoding/json"

	"gulfcv-be/internal/entity"
	"gulfcv-be/internal/model"
)

type CvRecordMapper struct{}

func NewCvRecordMapper() *CvRecordMapper {
	return &CvRecordMapper{}
}

func (m *CvRecordMapper) ToEntity(r *model.CvRecord) *entity.CvRecord {
	if r == nil {
		return nil
	}
	return &entity.CvRecord{
		Id:             r.Id,
		AgencyId:       r.AgencyId,
		IdempotencyKey: r.IdempotencyKey,
		Source:         r.Source,
		CandidateName:  r.CandidateName,
		ReferenceNo:    r.ReferenceNo,
		Snapshot:       json.RawMessage(r.Snapshot),
		CreatedAt:      r.CreatedAt,
	}
}

func (m *CvRecordMapper) ToModel(r *entity.CvRecord) *model.CvRecord {
	if r == nil {
		return nil
	}
	snapshot := r.Snapshot
	if len(snapshot) == 0 {
		snapshot = json.RawMessage("{}")
	}
	return &model.CvRecord{
		Id:             r.Id,
		AgencyId:       r.AgencyId,
		IdempotencyKey: r.IdempotencyKey,
		Source:         r.Source,
		CandidateName:  r.CandidateName,
		ReferenceNo:    r.ReferenceNo,
		Snapshot:       []byte(snapshot),
		CreatedAt:      r.CreatedAt,
	}
}

func (m *CvRecordMapper) ToEntities(records []*model.CvRecord) []*entity.CvRecord {
	entities := make([]*entity.CvRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
