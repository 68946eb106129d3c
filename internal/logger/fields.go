package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldComponent = "component"
	FieldModel     = "ai_model"
)

// WithFields attaches fields to l, defaulting to a no-op logger when l is nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// WithCommonFields tags l with the component and model. Blank values are skipped.
func WithCommonFields(l *zap.Logger, component, model string) *zap.Logger {
	var fields []zap.Field
	if v := strings.TrimSpace(component); v != "" {
		fields = append(fields, zap.String(FieldComponent, v))
	}
	if v := strings.TrimSpace(model); v != "" {
		fields = append(fields, zap.String(FieldModel, v))
	}
	return WithFields(l, fields...)
}
