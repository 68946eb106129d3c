package critique

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-critique/internal/logger"
	"go.uber.org/zap"
)

// ContentGenerator is the external text-generation capability.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

// ScorePolicy decides what happens to generated scores that parse correctly.
type ScorePolicy string

const (
	// ScorePolicyClamp clamps sub-scores to [0,5] and recomputes the overall score.
	ScorePolicyClamp ScorePolicy = "clamp"
	// ScorePolicyReject sends records that break the range or mean invariants to the fallback scorer.
	ScorePolicyReject ScorePolicy = "reject"
	// ScorePolicyPassthrough returns generated scores verbatim.
	ScorePolicyPassthrough ScorePolicy = "passthrough"
)

// ParseScorePolicy maps a config value to a ScorePolicy. Empty means clamp.
func ParseScorePolicy(v string) (ScorePolicy, error) {
	switch p := ScorePolicy(strings.ToLower(strings.TrimSpace(v))); p {
	case "":
		return ScorePolicyClamp, nil
	case ScorePolicyClamp, ScorePolicyReject, ScorePolicyPassthrough:
		return p, nil
	default:
		return "", fmt.Errorf("unknown score policy %q", v)
	}
}

const defaultMaxLogLength = 200

type Config struct {
	ScorePolicy  ScorePolicy
	MaxLogLength int
}

// Generator turns resume text into a Record using a ContentGenerator, falling
// back to ComputeFallback when the answer is not a valid record.
type Generator struct {
	content ContentGenerator
	policy  ScorePolicy
	maxLog  int
	logger  *zap.Logger
}

func NewGenerator(content ContentGenerator, cfg Config, log *zap.Logger) *Generator {
	if cfg.ScorePolicy == "" {
		cfg.ScorePolicy = ScorePolicyClamp
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	model := ""
	if content != nil {
		model = content.Model()
	}
	return &Generator{
		content: content,
		policy:  cfg.ScorePolicy,
		maxLog:  cfg.MaxLogLength,
		logger:  logger.WithCommonFields(log, "critique", model),
	}
}

// Generate critiques one resume. It returns a *GenerationError only when the
// generation call fails; malformed output yields the fallback record instead.
func (g *Generator) Generate(ctx context.Context, resumeText, filename string) (*Record, error) {
	if g.content == nil {
		return nil, &GenerationError{Err: fmt.Errorf("content generator is not configured")}
	}

	userPrompt := BuildUserPrompt(resumeText, filename)
	g.logger.Debug("critique generate request",
		zap.String("filename", filename),
		zap.Int("prompt_length", utf8.RuneCountInString(userPrompt)),
		zap.String("resume_preview", logger.TruncateForLog(resumeText, g.maxLog)),
	)

	raw, err := g.content.GenerateContent(ctx, SystemPrompt(), userPrompt)
	if errors.Is(err, ErrEmptyOutput) {
		g.logger.Warn("structured parsing failed, falling back to heuristic critique",
			zap.String("filename", filename),
			zap.Error(&ParseError{Reason: err.Error()}),
		)
		return ComputeFallback(resumeText, filename), nil
	}
	if err != nil {
		return nil, &GenerationError{Model: g.content.Model(), Err: err}
	}

	g.logger.Debug("critique generate response",
		zap.String("filename", filename),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, g.maxLog)),
	)

	record, err := ParseRecord(raw)
	if err == nil {
		err = g.applyPolicy(record)
	}
	if err != nil {
		g.logger.Warn("structured parsing failed, falling back to heuristic critique",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return ComputeFallback(resumeText, filename), nil
	}
	return record, nil
}

func (g *Generator) applyPolicy(r *Record) error {
	switch g.policy {
	case ScorePolicyPassthrough:
		return nil
	case ScorePolicyReject:
		if err := r.Validate(); err != nil {
			return &ParseError{Reason: "generated scores rejected", Issues: []string{err.Error()}}
		}
		return nil
	default:
		r.normalize()
		return nil
	}
}

// Model reports the downstream model name, or "" when no generator is configured.
func (g *Generator) Model() string {
	if g.content == nil {
		return ""
	}
	return g.content.Model()
}
