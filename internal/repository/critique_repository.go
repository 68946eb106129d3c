package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/resume-critique/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CritiqueRepository struct {
	db *gorm.DB
}

func NewCritiqueRepository(db *gorm.DB) *CritiqueRepository {
	return &CritiqueRepository{db}
}

func (r *CritiqueRepository) Create(ctx context.Context, c *model.Critique) error {
	return r.db.WithContext(ctx).Omit("Resume").Create(c).Error
}

// FindByID loads a critique together with its resume.
func (r *CritiqueRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Critique, error) {
	var c model.Critique
	err := r.db.WithContext(ctx).Preload("Resume").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of critiques, newest first, and the total count.
func (r *CritiqueRepository) List(ctx context.Context, offset, limit int) ([]model.Critique, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Critique{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var critiques []model.Critique
	err := r.db.WithContext(ctx).
		Preload("Resume").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&critiques).Error
	if err != nil {
		return nil, 0, err
	}
	return critiques, total, nil
}
