package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resume struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename   string    `gorm:"type:varchar(255);not null" json:"filename"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	FilePath   string    `gorm:"type:varchar(512)" json:"file_path"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mime_type"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now()
	}
	return nil
}
