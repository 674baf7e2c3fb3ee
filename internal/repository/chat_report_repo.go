package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"companion-llm/internal/domain"
)

type ChatReportRepository interface {
	Save(ctx context.Context, report domain.StoredChatReport) error
	GetBySessionID(ctx context.Context, sessionID string) (domain.StoredChatReport, error)
}

type PgChatReportRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatReportRepository(pool *pgxpool.Pool) *PgChatReportRepository {
	return &PgChatReportRepository{pool: pool}
}

func (r *PgChatReportRepository) Save(ctx context.Context, report domain.StoredChatReport) error {
	const query = `
		INSERT INTO chat_reports (id, session_id, user_id, source, turn_count, report, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	body, err := json.Marshal(report.Report)
	if err != nil {
		return fmt.Errorf("encode chat report: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		report.ID,
		report.SessionID,
		nullable(report.UserID),
		string(report.Source),
		report.TurnCount,
		body,
		report.GeneratedAt,
	)
	return err
}

// GetBySessionID devuelve el reporte mas reciente de la sesion.
func (r *PgChatReportRepository) GetBySessionID(ctx context.Context, sessionID string) (domain.StoredChatReport, error) {
	const query = `
		SELECT id, session_id, user_id, source, turn_count, report, generated_at
		FROM chat_reports
		WHERE session_id = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`
	var (
		report    domain.StoredChatReport
		userID    *string
		source    string
		reportRaw []byte
	)
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&report.ID,
		&report.SessionID,
		&userID,
		&source,
		&report.TurnCount,
		&reportRaw,
		&report.GeneratedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoredChatReport{}, ErrReportNotFound
	}
	if err != nil {
		return domain.StoredChatReport{}, err
	}
	if userID != nil {
		report.UserID = *userID
	}
	report.Source = domain.Source(source)
	if err := json.Unmarshal(reportRaw, &report.Report); err != nil {
		return domain.StoredChatReport{}, fmt.Errorf("decode chat report: %w", err)
	}
	return report, nil
}
