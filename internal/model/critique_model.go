package model

import (
	"time"

	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Critique struct {
	ID                     uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeID               uuid.UUID            `gorm:"type:uuid;not null;index" json:"resume_id"`
	Resume                 *Resume              `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"resume,omitempty"`
	OverallScore           float64              `gorm:"type:float" json:"overall_score"`
	StructureScore         float64              `gorm:"type:float" json:"structure_score"`
	KeywordsScore          float64              `gorm:"type:float" json:"keywords_score"`
	ActionVerbsScore       float64              `gorm:"type:float" json:"action_verbs_score"`
	QuantifiedImpactScore  float64              `gorm:"type:float" json:"quantified_impact_score"`
	ReadabilityScore       float64              `gorm:"type:float" json:"readability_score"`
	DetailedFeedback       critique.Feedback    `gorm:"type:jsonb;serializer:json" json:"detailed_feedback"`
	ImprovementSuggestions critique.Suggestions `gorm:"type:jsonb;serializer:json" json:"improvement_suggestions"`
	Source                 critique.Source      `gorm:"type:varchar(20)" json:"source"`
	CreatedAt              time.Time            `gorm:"index" json:"created_at"`
}

func (c *Critique) TableName() string {
	return "critiques"
}

func (c *Critique) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewCritique copies a pipeline record into a row owned by resumeID.
func NewCritique(resumeID uuid.UUID, r *critique.Record) *Critique {
	return &Critique{
		ResumeID:               resumeID,
		OverallScore:           r.OverallScore,
		StructureScore:         r.StructureScore,
		KeywordsScore:          r.KeywordsScore,
		ActionVerbsScore:       r.ActionVerbsScore,
		QuantifiedImpactScore:  r.QuantifiedImpactScore,
		ReadabilityScore:       r.ReadabilityScore,
		DetailedFeedback:       r.DetailedFeedback,
		ImprovementSuggestions: r.ImprovementSuggestions,
		Source:                 r.Source,
	}
}
