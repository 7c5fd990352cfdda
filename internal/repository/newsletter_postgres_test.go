package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/internal/repository/testutil"
)

var newsletterRowColumns = []string{
	"id", "company_id", "industry_insight_id", "title", "status", "industry_summary", "sections",
	"sent_at", "sent_count", "failed_count", "last_sent_status", "created_at", "updated_at",
}

const sectionsJSON = `[{"title":"Trends","content":"AI everywhere"},{"title":"Tips","content":"Ship weekly"},{"title":"Wins","content":"Case study"}]`

func TestNewsletterRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewNewsletterRepository(db)

	newsletter := domain.NewDraftNewsletter("", &domain.Company{ID: "c1", CompanyName: "Acme"})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO newsletters (id,company_id,industry_insight_id,title,status,industry_summary,sections,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)")).
		WithArgs(sqlmock.AnyArg(), "c1", nil, "Acme Newsletter Draft", domain.NewsletterStatusDraft, nil, []byte("[]"), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), newsletter))
	assert.NotEmpty(t, newsletter.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_GetWithCompany(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewNewsletterRepository(db)
	now := time.Now().UTC()

	columns := append(append([]string{}, newsletterRowColumns...), companyRowColumns...)
	rows := sqlmock.NewRows(columns).AddRow(
		"n1", "c1", nil, "Acme Newsletter Draft", "draft", nil, []byte("[]"),
		nil, 0, 0, nil, now, now,
		"c1", "Acme", "https://acme.test", "owner@acme.test", nil, "retail", "shoppers",
		"Deal hunters", []byte(`[]`), "Shop now", "active", now, now,
	)
	mock.ExpectQuery(`SELECT (.+) FROM newsletters n JOIN companies c ON c.id = n.company_id WHERE n.id = \$1`).
		WithArgs("n1").
		WillReturnRows(rows)

	result, err := repo.GetWithCompany(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "n1", result.ID)
	assert.Empty(t, result.Sections)
	assert.Nil(t, result.SentAt)
	require.NotNil(t, result.Company)
	assert.Equal(t, "Acme", result.Company.CompanyName)
	assert.Equal(t, "shoppers", result.Company.TargetAudience)

	mock.ExpectQuery(`SELECT (.+) FROM newsletters n JOIN companies`).WithArgs("gone").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetWithCompany(context.Background(), "gone")
	assert.IsType(t, &domain.ErrNotFound{}, err)
}

func TestNewsletterRepository_GetLatest(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewNewsletterRepository(db)
	now := time.Now().UTC()

	t.Run("newest row", func(t *testing.T) {
		rows := sqlmock.NewRows(newsletterRowColumns).AddRow(
			"n1", "c1", nil, "Acme Newsletter Draft", "sent", "Summary", []byte(sectionsJSON),
			now, 10, 1, "partial_failure", now, now,
		)
		mock.ExpectQuery(`SELECT (.+) FROM newsletters n ORDER BY n.created_at DESC LIMIT 1`).WillReturnRows(rows)

		newsletter, err := repo.GetLatest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "n1", newsletter.ID)
		assert.Equal(t, domain.NewsletterStatusSent, newsletter.Status)
		assert.Equal(t, "Summary", newsletter.IndustrySummary)
		assert.Len(t, newsletter.Sections, 3)
		assert.True(t, newsletter.HasContent())
		require.NotNil(t, newsletter.SentAt)
		assert.Equal(t, 10, newsletter.SentCount)
		assert.Equal(t, domain.DeliveryStatusPartialFailure, newsletter.LastSentStatus)
	})

	t.Run("no newsletters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM newsletters n ORDER BY n.created_at DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows(newsletterRowColumns))

		_, err := repo.GetLatest(context.Background())
		assert.IsType(t, &domain.ErrNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterRepository_Updates(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewNewsletterRepository(db)
	ctx := context.Background()

	t.Run("status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE newsletters SET status = $1, updated_at = $2 WHERE id = $3")).
			WithArgs(domain.NewsletterStatusGenerating, sqlmock.AnyArg(), "n1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(ctx, "n1", domain.NewsletterStatusGenerating))
	})

	t.Run("content", func(t *testing.T) {
		sections := []domain.NewsletterSection{{Title: "Trends", Content: "AI"}}
		mock.ExpectExec(regexp.QuoteMeta("UPDATE newsletters SET industry_summary = $1, sections = $2, status = $3, updated_at = $4 WHERE id = $5")).
			WithArgs(sql.NullString{String: "Summary", Valid: true}, []byte(`[{"title":"Trends","content":"AI"}]`), domain.NewsletterStatusDraft, sqlmock.AnyArg(), "n1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateContent(ctx, "n1", "Summary", sections, domain.NewsletterStatusDraft))
	})

	t.Run("delivery", func(t *testing.T) {
		at := time.Now().UTC()
		result := domain.NewDeliveryResult(3, 0, at)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE newsletters SET failed_count = $1, last_sent_status = $2, sent_at = $3, sent_count = $4, status = $5, updated_at = $6 WHERE id = $7")).
			WithArgs(0, domain.DeliveryStatusSuccess, at, 3, domain.NewsletterStatusSent, sqlmock.AnyArg(), "n1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RecordDelivery(ctx, "n1", result))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE newsletters")).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "gone", domain.NewsletterStatusSent)
		assert.IsType(t, &domain.ErrNotFound{}, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
