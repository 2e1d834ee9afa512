package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/partner-desk/internal/domain"
)

// PartnerRepository persists the partner collection shared between desk instances.
// Upsert ignores a snapshot whose version is older than the stored row, so
// out-of-order writes cannot move a partner backward. List returns partners
// newest created first.
type PartnerRepository interface {
	Upsert(ctx context.Context, partner domain.Partner) error
	List(ctx context.Context) ([]domain.Partner, error)
}

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository returns a Postgres-backed implementation.
func NewPartnerRepository(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepository{pool: pool}
}

const partnerColumns = `id, name, tier, health, last_activity, open_threads, revenue, segment, account_manager, version`

func (r *partnerRepository) Upsert(ctx context.Context, partner domain.Partner) error {
	const query = `
        INSERT INTO partners (` + partnerColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (id) DO UPDATE SET
            name=EXCLUDED.name,
            tier=EXCLUDED.tier,
            health=EXCLUDED.health,
            last_activity=GREATEST(partners.last_activity, EXCLUDED.last_activity),
            open_threads=EXCLUDED.open_threads,
            revenue=EXCLUDED.revenue,
            segment=EXCLUDED.segment,
            account_manager=EXCLUDED.account_manager,
            version=EXCLUDED.version,
            updated_at=NOW()
        WHERE partners.version <= EXCLUDED.version`

	_, err := r.pool.Exec(ctx, query,
		partner.ID,
		partner.Name,
		partner.Tier,
		partner.Health,
		partner.LastActivity,
		partner.OpenThreads,
		partner.Revenue,
		partner.Segment,
		partner.AccountManager,
		partner.Version,
	)
	return err
}

// List returns partners newest created first, matching the store's order.
func (r *partnerRepository) List(ctx context.Context) ([]domain.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Partner{}
	for rows.Next() {
		partner, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, partner)
	}
	return result, rows.Err()
}

func scanPartner(row pgx.Row) (domain.Partner, error) {
	var partner domain.Partner
	err := row.Scan(
		&partner.ID,
		&partner.Name,
		&partner.Tier,
		&partner.Health,
		&partner.LastActivity,
		&partner.OpenThreads,
		&partner.Revenue,
		&partner.Segment,
		&partner.AccountManager,
		&partner.Version,
	)
	return partner, err
}
