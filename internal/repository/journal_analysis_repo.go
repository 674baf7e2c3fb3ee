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

var ErrAnalysisNotFound = errors.New("journal analysis not found")

type JournalAnalysisRepository interface {
	Save(ctx context.Context, rec domain.JournalAnalysisRecord) error
	GetByJournalEntryID(ctx context.Context, journalEntryID string) (domain.JournalAnalysisRecord, error)
}

type PgJournalAnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewPgJournalAnalysisRepository(pool *pgxpool.Pool) *PgJournalAnalysisRepository {
	return &PgJournalAnalysisRepository{pool: pool}
}

// Save guarda el analisis; si la entrada ya tenia uno, lo reemplaza.
func (r *PgJournalAnalysisRepository) Save(ctx context.Context, rec domain.JournalAnalysisRecord) error {
	body, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("encode journal analysis: %w", err)
	}

	if rec.JournalEntryID == "" {
		const insert = `
			INSERT INTO journal_analyses (id, journal_entry_id, user_id, source, analysis, created_at)
			VALUES ($1, NULL, $2, $3, $4, $5)
		`
		_, err = r.pool.Exec(ctx, insert, rec.ID, nullable(rec.UserID), string(rec.Source), body, rec.CreatedAt)
		return err
	}

	const upsert = `
		INSERT INTO journal_analyses (id, journal_entry_id, user_id, source, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (journal_entry_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    source = EXCLUDED.source,
		    analysis = EXCLUDED.analysis,
		    created_at = EXCLUDED.created_at
	`
	_, err = r.pool.Exec(ctx, upsert,
		rec.ID,
		rec.JournalEntryID,
		nullable(rec.UserID),
		string(rec.Source),
		body,
		rec.CreatedAt,
	)
	return err
}

func (r *PgJournalAnalysisRepository) GetByJournalEntryID(ctx context.Context, journalEntryID string) (domain.JournalAnalysisRecord, error) {
	const query = `
		SELECT id, journal_entry_id, user_id, source, analysis, created_at
		FROM journal_analyses
		WHERE journal_entry_id = $1
	`
	var (
		rec         domain.JournalAnalysisRecord
		entryID     *string
		userID      *string
		source      string
		analysisRaw []byte
	)
	err := r.pool.QueryRow(ctx, query, journalEntryID).Scan(
		&rec.ID,
		&entryID,
		&userID,
		&source,
		&analysisRaw,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.JournalAnalysisRecord{}, ErrAnalysisNotFound
	}
	if err != nil {
		return domain.JournalAnalysisRecord{}, err
	}
	if entryID != nil {
		rec.JournalEntryID = *entryID
	}
	if userID != nil {
		rec.UserID = *userID
	}
	rec.Source = domain.Source(source)
	if err := json.Unmarshal(analysisRaw, &rec.Analysis); err != nil {
		return domain.JournalAnalysisRecord{}, fmt.Errorf("decode journal analysis: %w", err)
	}
	return rec, nil
}

func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
