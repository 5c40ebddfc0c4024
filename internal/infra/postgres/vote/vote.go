package infra_postgres_vote

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/justinhuang159/Grubble/internal/model"
	usecase_vote "github.com/justinhuang159/Grubble/internal/usecase/vote"
	"github.com/lib/pq"
)

// Driver backs all of the voting engine's reads and writes: votes plus
// the session and candidate lookups the engine needs.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

func (d *Driver) ByCode(ctx context.Context, code string) (model.Session, error) {
	var dto sessionDTO

	query := `
		SELECT id, room_code, host_name, status
		FROM sessions
		WHERE room_code = UPPER($1)
	`

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, usecase_vote.ErrResourceNotFound
		}
		return model.Session{}, err
	}

	session := model.Session{
		ID:       dto.ID,
		RoomCode: dto.RoomCode,
		HostName: dto.HostName,
		Status:   dto.Status,
	}

	participantsQuery := `
		SELECT user_name, joined_at
		FROM participants
		WHERE session_id = $1
		ORDER BY id
	`
	var participants []participantDTO
	if err := d.db.SelectContext(ctx, &participants, participantsQuery, session.ID); err != nil {
		return model.Session{}, err
	}
	for _, p := range participants {
		session.Participants = append(session.Participants, model.Participant{
			UserName: p.UserName,
			JoinedAt: p.JoinedAt,
		})
	}

	return session, nil
}

func (d *Driver) BySession(ctx context.Context, sessionID uuid.UUID) ([]model.Restaurant, error) {
	var dtos []restaurantDTO

	query := `
		SELECT id, session_id, external_id, name, image_url, address, lat, lng, price, rating, review_count, created_at
		FROM restaurants
		WHERE session_id = $1
		ORDER BY id
	`

	if err := d.db.SelectContext(ctx, &dtos, query, sessionID); err != nil {
		return nil, err
	}

	restaurants := make([]model.Restaurant, 0, len(dtos))
	for _, dto := range dtos {
		restaurants = append(restaurants, dto.toModel())
	}
	return restaurants, nil
}

func (d *Driver) ByID(ctx context.Context, sessionID uuid.UUID, restaurantID int64) (model.Restaurant, error) {
	var dto restaurantDTO

	query := `
		SELECT id, session_id, external_id, name, image_url, address, lat, lng, price, rating, review_count, created_at
		FROM restaurants
		WHERE id = $1 AND session_id = $2
	`

	err := d.db.GetContext(ctx, &dto, query, restaurantID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, usecase_vote.ErrResourceNotFound
		}
		return model.Restaurant{}, err
	}

	return dto.toModel(), nil
}

func (d *Driver) Find(ctx context.Context, sessionID uuid.UUID, userName string, restaurantID int64) (model.Vote, error) {
	var dto voteDTO

	query := `
		SELECT id, session_id, participant_name, restaurant_id, decision, created_at
		FROM votes
		WHERE session_id = $1 AND participant_name = $2 AND restaurant_id = $3
	`

	err := d.db.GetContext(ctx, &dto, query, sessionID, userName, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vote{}, usecase_vote.ErrResourceNotFound
		}
		return model.Vote{}, err
	}

	return dto.toModel(), nil
}

func (d *Driver) Insert(ctx context.Context, vote model.Vote) error {
	query := `
		INSERT INTO votes (session_id, participant_name, restaurant_id, decision)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := d.db.ExecContext(ctx, query, vote.SessionID, vote.ParticipantName, vote.RestaurantID, vote.Decision); err != nil {
		if isUniqueViolation(err) {
			return usecase_vote.ErrConflict
		}
		return err
	}
	return nil
}

func (d *Driver) TallyForRestaurant(ctx context.Context, sessionID uuid.UUID, restaurantID int64) (int, int, error) {
	var tally struct {
		Total int `db:"total"`
		Yes   int `db:"yes"`
	}

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE decision = 'yes') AS yes
		FROM votes
		WHERE session_id = $1 AND restaurant_id = $2
	`

	if err := d.db.GetContext(ctx, &tally, query, sessionID, restaurantID); err != nil {
		return 0, 0, err
	}
	return tally.Total, tally.Yes, nil
}

func (d *Driver) RestaurantIDsVotedBy(ctx context.Context, sessionID uuid.UUID, userName string) (map[int64]struct{}, error) {
	var ids []int64

	query := `
		SELECT restaurant_id
		FROM votes
		WHERE session_id = $1 AND participant_name = $2
	`

	if err := d.db.SelectContext(ctx, &ids, query, sessionID, userName); err != nil {
		return nil, err
	}

	voted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		voted[id] = struct{}{}
	}
	return voted, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
