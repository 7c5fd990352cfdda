package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/internal/repository/testutil"
)

func TestCSVUploadRepository(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewCSVUploadRepository(db)

	upload := &domain.CSVUpload{CompanyID: "c1", Filename: "contacts.csv"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO csv_uploads")).
		WithArgs(sqlmock.AnyArg(), "c1", "contacts.csv", domain.CSVUploadStatusProcessing, 0, 0, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), upload))
	assert.NotEmpty(t, upload.ID)

	upload.Finish(8, 2)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE csv_uploads")).
		WithArgs(domain.CSVUploadStatusCompleted, 8, 2, "Failed to insert 2 contacts", sqlmock.AnyArg(), upload.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateResult(context.Background(), upload))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE csv_uploads")).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateResult(context.Background(), &domain.CSVUpload{ID: "gone", Status: domain.CSVUploadStatusFailed})
	assert.IsType(t, &domain.ErrNotFound{}, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIndustryInsightRepository_CreateBasic(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	repo := NewIndustryInsightRepository(db)

	insight := &domain.IndustryInsight{CompanyID: "c1", Industry: "retail", Bullets: []string{"Omnichannel grows", "Margins shrink"}}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO industry_insights")).
		WithArgs(sqlmock.AnyArg(), "c1", "retail", []byte(`["Omnichannel grows","Margins shrink"]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), insight))
	assert.NotEmpty(t, insight.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
