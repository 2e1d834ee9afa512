package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// HealthHistoryRepository stores partner health audit entries.
type HealthHistoryRepository interface {
	Create(ctx context.Context, entry domain.HealthHistoryEntry) error
	ListByPartner(ctx context.Context, partnerID string) ([]domain.HealthHistoryEntry, error)
}

type healthHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHealthHistoryRepository builds repository.
func NewHealthHistoryRepository(pool *pgxpool.Pool) HealthHistoryRepository {
	return &healthHistoryRepository{pool: pool}
}

func (r *healthHistoryRepository) Create(ctx context.Context, entry domain.HealthHistoryEntry) error {
	const query = `
        INSERT INTO partner_health_history (id, partner_id, health, reason, recorded_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.PartnerID,
		entry.Health,
		entry.Reason,
		entry.RecordedAt,
	)
	return err
}

// ListByPartner returns entries newest first.
func (r *healthHistoryRepository) ListByPartner(ctx context.Context, partnerID string) ([]domain.HealthHistoryEntry, error) {
	const query = `
        SELECT id, partner_id, health, reason, recorded_at
        FROM partner_health_history WHERE partner_id=$1 ORDER BY recorded_at DESC`
	rows, err := r.pool.Query(ctx, query, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HealthHistoryEntry
	for rows.Next() {
		var entry domain.HealthHistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.PartnerID,
			&entry.Health,
			&entry.Reason,
			&entry.RecordedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
