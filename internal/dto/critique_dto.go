package dto

import (
	"time"

	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/model"
	"github.com/google/uuid"
)

type ScoresDTO struct {
	Structure        float64 `json:"structure"`
	Keywords         float64 `json:"keywords"`
	ActionVerbs      float64 `json:"action_verbs"`
	QuantifiedImpact float64 `json:"quantified_impact"`
	Readability      float64 `json:"readability"`
}

type CritiqueDTO struct {
	ID                     uuid.UUID            `json:"id"`
	ResumeID               uuid.UUID            `json:"resume_id"`
	ResumeFilename         string               `json:"resume_filename"`
	OverallScore           float64              `json:"overall_score"`
	Scores                 ScoresDTO            `json:"scores"`
	DetailedFeedback       critique.Feedback    `json:"detailed_feedback"`
	ImprovementSuggestions critique.Suggestions `json:"improvement_suggestions"`
	Source                 critique.Source      `json:"source"`
	CreatedAt              time.Time            `json:"created_at"`
}

type UploadResultDTO struct {
	CritiqueID uuid.UUID    `json:"critique_id"`
	Critique   *CritiqueDTO `json:"critique"`
}

type HistoryItemDTO struct {
	ID             uuid.UUID       `json:"id"`
	ResumeFilename string          `json:"resume_filename"`
	OverallScore   float64         `json:"overall_score"`
	Source         critique.Source `json:"source"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewCritiqueDTO(c *model.Critique) *CritiqueDTO {
	d := &CritiqueDTO{
		ID:           c.ID,
		ResumeID:     c.ResumeID,
		OverallScore: c.OverallScore,
		Scores: ScoresDTO{
			Structure:        c.StructureScore,
			Keywords:         c.KeywordsScore,
			ActionVerbs:      c.ActionVerbsScore,
			QuantifiedImpact: c.QuantifiedImpactScore,
			Readability:      c.ReadabilityScore,
		},
		DetailedFeedback:       c.DetailedFeedback,
		ImprovementSuggestions: c.ImprovementSuggestions,
		Source:                 c.Source,
		CreatedAt:              c.CreatedAt,
	}
	if c.Resume != nil {
		d.ResumeFilename = c.Resume.Filename
	}
	return d
}

func NewHistoryItemDTO(c *model.Critique) HistoryItemDTO {
	item := HistoryItemDTO{
		ID:           c.ID,
		OverallScore: c.OverallScore,
		Source:       c.Source,
		CreatedAt:    c.CreatedAt,
	}
	if c.Resume != nil {
		item.ResumeFilename = c.Resume.Filename
	}
	return item
}
