package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Notifuse/newsletter/internal/domain"
	"github.com/Notifuse/newsletter/pkg/tracing"
)

type industryInsightRepository struct {
	db *sql.DB
}

// NewIndustryInsightRepository creates a new PostgreSQL insight repository
func NewIndustryInsightRepository(db *sql.DB) domain.IndustryInsightRepository {
	return &industryInsightRepository{db: db}
}

func (r *industryInsightRepository) Create(ctx context.Context, insight *domain.IndustryInsight) error {
	return tracing.TraceMethod(ctx, "IndustryInsightRepository", "Create", func(ctx context.Context) error {
		if insight.ID == "" {
			insight.ID = uuid.New().String()
		}
		insight.CreatedAt = time.Now().UTC()

		bullets, err := json.Marshal(insight.Bullets)
		if err != nil {
			return fmt.Errorf("failed to marshal insights: %w", err)
		}

		_, err = r.db.ExecContext(ctx, `
			INSERT INTO industry_insights (id, company_id, industry, insights, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, insight.ID, insight.CompanyID, insight.Industry, bullets, insight.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create industry insight: %w", err)
		}
		return nil
	})
}
