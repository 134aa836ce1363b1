package mapper

import (
	"strings"

	"election-assistant-be/internal/entity"
	"election-assistant-be/internal/model"
)

type CandidateMapper struct{}

func NewCandidateMapper() *CandidateMapper {
	return &CandidateMapper{}
}

func (m *CandidateMapper) CandidateToEntity(c *model.Candidate) *entity.Candidate {
	if c == nil {
		return nil
	}
	return &entity.Candidate{
		Id:       c.Id,
		Position: strings.TrimSpace(c.Position),
		Name:     strings.TrimSpace(c.CandidateName),
		Party:    strings.TrimSpace(c.Party),
	}
}

func (m *CandidateMapper) CandidatesToEntities(rows []*model.Candidate) []*entity.Candidate {
	out := make([]*entity.Candidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.CandidateToEntity(r))
	}
	return out
}

func (m *CandidateMapper) CandidatesToModels(candidates []*entity.Candidate) []*model.Candidate {
	out := make([]*model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		out = append(out, &model.Candidate{
			Position:      c.Position,
			CandidateName: c.Name,
			Party:         c.Party,
		})
	}
	return out
}
