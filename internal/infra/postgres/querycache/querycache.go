package infra_postgres_querycache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
)

// Driver is the durable query-cache backend: one row per normalized
// search key. Staleness is the usecase's concern; rows are only ever
// refreshed in place.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type entryDTO struct {
	Results   []byte    `db:"results"`
	CreatedAt time.Time `db:"created_at"`
}

func (d *Driver) Get(ctx context.Context, key string) (usecase_session.CachedQuery, error) {
	var dto entryDTO

	query := `
		SELECT results, created_at
		FROM yelp_query_cache
		WHERE query_key = $1
	`

	err := d.db.GetContext(ctx, &dto, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usecase_session.CachedQuery{}, usecase_session.ErrCacheMiss
		}
		return usecase_session.CachedQuery{}, err
	}

	var results []map[string]any
	if err := json.Unmarshal(dto.Results, &results); err != nil {
		return usecase_session.CachedQuery{}, err
	}

	return usecase_session.CachedQuery{
		Results:   results,
		CreatedAt: dto.CreatedAt,
	}, nil
}

func (d *Driver) Put(ctx context.Context, key string, q usecase_session.SearchQuery, results []map[string]any) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}

	var radius *int
	if q.RadiusMeters > 0 {
		radius = &q.RadiusMeters
	}
	var price *string
	if q.Price != "" {
		price = &q.Price
	}

	query := `
		INSERT INTO yelp_query_cache (query_key, term, location_text, price, radius_meters, results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (query_key)
		DO UPDATE SET results = EXCLUDED.results, created_at = now()
	`

	_, err = d.db.ExecContext(ctx, query, key, q.Term, q.Location, price, radius, payload)
	return err
}
