package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var critiqueColumns = []string{
	"id", "resume_id", "overall_score", "structure_score", "keywords_score", "action_verbs_score",
	"quantified_impact_score", "readability_score", "detailed_feedback", "improvement_suggestions", "source", "created_at",
}

const (
	feedbackJSON    = `{"structure":"s","keywords":"k","action_verbs":"a","quantified_impact":"q","readability":"r"}`
	suggestionsJSON = `{"structure":["s"],"keywords":["k"],"action_verbs":["a"],"quantified_impact":["q"],"readability":["r"]}`
)

func TestResumeRepositoryCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectExec(`INSERT INTO "resumes"`).WillReturnResult(sqlmock.NewResult(1, 1))

	resume := &model.Resume{Filename: "cv.txt", Content: "Led a team"}
	require.NoError(t, repo.Create(context.Background(), resume))

	assert.NotEqual(t, uuid.Nil, resume.ID)
	assert.False(t, resume.UploadedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCritiqueRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCritiqueRepository(db)

	mock.ExpectExec(`INSERT INTO "critiques"`).WillReturnResult(sqlmock.NewResult(1, 1))

	c := model.NewCritique(uuid.New(), critique.ComputeFallback("Managed 3 teams", "cv.txt"))
	require.NoError(t, repo.Create(context.Background(), c))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, critique.SourceFallback, c.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCritiqueRepositoryFindByIDPreloadsResume(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCritiqueRepository(db)

	id, resumeID := uuid.New(), uuid.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "critiques" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(critiqueColumns).
			AddRow(id.String(), resumeID.String(), 3.8, 4.0, 3.5, 4.0, 3.0, 4.5, feedbackJSON, suggestionsJSON, "generated", created))
	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE "resumes"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "content"}).
			AddRow(resumeID.String(), "jane.txt", "Jane Doe"))

	c, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, c.ID)
	assert.InDelta(t, 3.8, c.OverallScore, 1e-9)
	assert.Equal(t, "a", c.DetailedFeedback.ActionVerbs)
	assert.Equal(t, []string{"q"}, c.ImprovementSuggestions.QuantifiedImpact)
	assert.Equal(t, critique.SourceGenerated, c.Source)
	require.NotNil(t, c.Resume)
	assert.Equal(t, "jane.txt", c.Resume.Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCritiqueRepositoryFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCritiqueRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "critiques" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(critiqueColumns))

	c, err := repo.FindByID(context.Background(), uuid.New())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCritiqueRepositoryFindByIDQueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCritiqueRepository(db)

	boom := errors.New("connection lost")
	mock.ExpectQuery(`SELECT \* FROM "critiques"`).WillReturnError(boom)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCritiqueRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCritiqueRepository(db)

	resumeID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "critiques"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT \* FROM "critiques" ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WillReturnRows(sqlmock.NewRows(critiqueColumns).
			AddRow(uuid.NewString(), resumeID.String(), 2.9, 1.0, 3.5, 3.5, 2.6, 4.0, feedbackJSON, suggestionsJSON, "fallback", now).
			AddRow(uuid.NewString(), resumeID.String(), 3.8, 4.0, 3.5, 4.0, 3.0, 4.5, feedbackJSON, suggestionsJSON, "generated", now.Add(-time.Hour)))
	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE "resumes"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename"}).AddRow(resumeID.String(), "cv.txt"))

	items, total, err := repo.List(context.Background(), 10, 10)
	require.NoError(t, err)

	assert.EqualValues(t, 12, total)
	require.Len(t, items, 2)
	assert.Equal(t, critique.SourceFallback, items[0].Source)
	assert.Equal(t, "cv.txt", items[1].Resume.Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}
