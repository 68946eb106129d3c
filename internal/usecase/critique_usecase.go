package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/dto"
	"github.com/fadilmartias/resume-critique/internal/logger"
	"github.com/fadilmartias/resume-critique/internal/metrics"
	"github.com/fadilmartias/resume-critique/internal/model"
	"github.com/fadilmartias/resume-critique/internal/response"
	"github.com/fadilmartias/resume-critique/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *model.Resume) error
}

type CritiqueRepository interface {
	Create(ctx context.Context, c *model.Critique) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Critique, error)
	List(ctx context.Context, offset, limit int) ([]model.Critique, int64, error)
}

type CritiqueGenerator interface {
	Generate(ctx context.Context, resumeText, filename string) (*critique.Record, error)
	Model() string
}

// UploadInput is a resume already read and stored by the transport layer.
type UploadInput struct {
	Filename string
	Content  string
	FilePath string
	FileSize int64
	MimeType string
}

type CritiqueUsecase struct {
	resumes   ResumeRepository
	critiques CritiqueRepository
	generator CritiqueGenerator
	retry     RetryPolicy
	logger    *zap.Logger
	wait      func(ctx context.Context, d time.Duration) error
}

func NewCritiqueUsecase(resumes ResumeRepository, critiques CritiqueRepository, generator CritiqueGenerator, retry RetryPolicy, log *zap.Logger) *CritiqueUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &CritiqueUsecase{
		resumes:   resumes,
		critiques: critiques,
		generator: generator,
		retry:     retry,
		logger:    logger.WithCommonFields(log, "critique_usecase", generator.Model()),
		wait:      sleepContext,
	}
}

// Critique runs the pipeline without persisting anything.
func (uc *CritiqueUsecase) Critique(ctx context.Context, resumeText, filename string) (*critique.Record, error) {
	return uc.generate(ctx, resumeText, filename)
}

// Submit stores the resume, critiques it and stores the critique.
func (uc *CritiqueUsecase) Submit(ctx context.Context, in UploadInput) (*dto.CritiqueDTO, error) {
	resume := &model.Resume{
		Filename: in.Filename,
		Content:  in.Content,
		FilePath: in.FilePath,
		FileSize: in.FileSize,
		MimeType: in.MimeType,
	}
	if err := uc.resumes.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}

	record, err := uc.generate(ctx, in.Content, in.Filename)
	if err != nil {
		return nil, err
	}

	c := model.NewCritique(resume.ID, record)
	if err := uc.critiques.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("save critique: %w", err)
	}
	c.Resume = resume

	uc.logger.Info("critique stored",
		zap.String("critique_id", c.ID.String()),
		zap.String("resume_id", resume.ID.String()),
		zap.String("source", string(c.Source)),
		zap.Float64("overall_score", c.OverallScore),
	)
	return dto.NewCritiqueDTO(c), nil
}

func (uc *CritiqueUsecase) GetCritique(ctx context.Context, id uuid.UUID) (*dto.CritiqueDTO, error) {
	c, err := uc.critiques.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCritiqueDTO(c), nil
}

// History returns one newest-first page of stored critiques.
func (uc *CritiqueUsecase) History(ctx context.Context, page, pageSize int) ([]dto.HistoryItemDTO, *response.Pagination, error) {
	page, pageSize = response.NormalizePage(page, pageSize)

	rows, total, err := uc.critiques.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("list critiques: %w", err)
	}

	items := make([]dto.HistoryItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewHistoryItemDTO(&rows[i]))
	}
	return items, response.NewPagination(page, pageSize, len(items), total), nil
}

func (uc *CritiqueUsecase) generate(ctx context.Context, resumeText, filename string) (*critique.Record, error) {
	modelName := uc.generator.Model()

	var lastErr error
	for attempt := 0; attempt <= uc.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := uc.retry.Backoff(attempt - 1)
			uc.logger.Warn("retrying critique generation",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := uc.wait(ctx, delay); err != nil {
				return nil, lastErr
			}
		}

		record, err := uc.attempt(ctx, resumeText, filename)
		if err == nil {
			metrics.CritiquesTotal.WithLabelValues(string(record.Source)).Inc()
			return record, nil
		}

		lastErr = err
		retryable := ctx.Err() == nil && service.IsRetryableError(err)
		metrics.GenerationFailuresTotal.WithLabelValues(modelName, strconv.FormatBool(retryable)).Inc()
		if !retryable {
			break
		}
	}

	uc.logger.Error("critique generation failed",
		zap.String("filename", filename),
		zap.Error(lastErr),
	)
	return nil, lastErr
}

func (uc *CritiqueUsecase) attempt(ctx context.Context, resumeText, filename string) (*critique.Record, error) {
	if uc.retry.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.retry.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	record, err := uc.generator.Generate(ctx, resumeText, filename)
	metrics.GenerationDuration.WithLabelValues(uc.generator.Model()).Observe(time.Since(start).Seconds())
	return record, err
}
