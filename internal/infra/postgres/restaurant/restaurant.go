package infra_postgres_restaurant

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/justinhuang159/Grubble/internal/model"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

// ReplaceForSession swaps the session's candidate set in one transaction.
// Rows are inserted in slice order; the serial id preserves that order as
// the voting tiebreak.
func (d *Driver) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, restaurants []model.Restaurant) ([]model.Restaurant, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := `
		DELETE FROM restaurants
		WHERE session_id = $1
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, sessionID); err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO restaurants (session_id, external_id, name, image_url, address, lat, lng, price, rating, review_count, source_payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	persisted := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		r.SessionID = sessionID
		row := tx.QueryRowxContext(ctx, insertQuery,
			sessionID,
			r.ExternalID,
			r.Name,
			r.ImageURL,
			r.Address,
			r.Lat,
			r.Lng,
			r.Price,
			r.Rating,
			r.ReviewCount,
			[]byte(r.SourcePayload),
		)
		if err := row.Scan(&r.ID, &r.CreatedAt); err != nil {
			return nil, err
		}
		persisted = append(persisted, r)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return persisted, nil
}
