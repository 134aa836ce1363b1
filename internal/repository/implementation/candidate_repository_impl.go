package implementation

import (
	"context"

	"election-assistant-be/internal/entity"
	"election-assistant-be/internal/mapper"
	"election-assistant-be/internal/model"
	"election-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type CandidateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateMapper
}

func NewCandidateRepository(db *gorm.DB) contract.CandidateRepository {
	return &CandidateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateMapper(),
	}
}

// FindAll returns every row in insertion order so the catalog keeps the
// ordering of the source list.
func (r *CandidateRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Candidate, error) {
	var rows []*model.Candidate
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.CandidatesToEntities(rows), nil
}

func (r *CandidateRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Candidate{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CandidateRepositoryImpl) ReplaceAll(ctx context.Context, candidates []*entity.Candidate) error {
	rows := r.mapper.CandidatesToModels(candidates)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Candidate{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}
