package infra_postgres_session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/justinhuang159/Grubble/internal/model"
	usecase_session "github.com/justinhuang159/Grubble/internal/usecase/session"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

func (d *Driver) Create(ctx context.Context, session model.Session) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO sessions (id, room_code, host_name, status, cuisine, price, radius_meters, location_text)
		VALUES (:id, :room_code, :host_name, :status, :cuisine, :price, :radius_meters, :location_text)
	`

	if _, err := tx.NamedExecContext(ctx, query, fromModel(session)); err != nil {
		if isUniqueViolation(err) {
			return usecase_session.ErrCodeConflict
		}
		return err
	}

	// The host is always the first participant.
	hostQuery := `
		INSERT INTO participants (session_id, user_name)
		VALUES ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, hostQuery, session.ID, session.HostName); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) ByCode(ctx context.Context, code string) (model.Session, error) {
	var dto sessionDTO

	query := `
		SELECT id, room_code, host_name, status, cuisine, price, radius_meters, location_text, created_at
		FROM sessions
		WHERE room_code = UPPER($1)
	`

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, usecase_session.ErrResourceNotFound
		}
		return model.Session{}, err
	}

	session := dto.toModel()
	session.Participants, err = d.participants(ctx, session.ID)
	if err != nil {
		return model.Session{}, err
	}

	return session, nil
}

func (d *Driver) List(ctx context.Context) ([]model.Session, error) {
	var dtos []sessionDTO

	query := `
		SELECT id, room_code, host_name, status, cuisine, price, radius_meters, location_text, created_at
		FROM sessions
		ORDER BY created_at DESC
	`

	if err := d.db.SelectContext(ctx, &dtos, query); err != nil {
		return nil, err
	}

	sessions := make([]model.Session, 0, len(dtos))
	for _, dto := range dtos {
		session := dto.toModel()
		participants, err := d.participants(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		session.Participants = participants
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (d *Driver) AddParticipant(ctx context.Context, sessionID uuid.UUID, userName string) error {
	query := `
		INSERT INTO participants (session_id, user_name)
		VALUES ($1, $2)
	`

	if _, err := d.db.ExecContext(ctx, query, sessionID, userName); err != nil {
		if isUniqueViolation(err) {
			return usecase_session.ErrConflict
		}
		return err
	}
	return nil
}

func (d *Driver) SetStatus(ctx context.Context, sessionID uuid.UUID, status model.SessionStatus) error {
	query := `
		UPDATE sessions
		SET status = $1
		WHERE id = $2
	`

	result, err := d.db.ExecContext(ctx, query, status, sessionID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}

	return nil
}

// DeleteByCode relies on ON DELETE CASCADE to drop participants,
// restaurants and votes with the session.
func (d *Driver) DeleteByCode(ctx context.Context, code string) error {
	query := `
		DELETE FROM sessions
		WHERE room_code = UPPER($1)
	`

	result, err := d.db.ExecContext(ctx, query, code)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}

	return nil
}

func (d *Driver) participants(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error) {
	var dtos []participantDTO

	query := `
		SELECT user_name, joined_at
		FROM participants
		WHERE session_id = $1
		ORDER BY id
	`

	if err := d.db.SelectContext(ctx, &dtos, query, sessionID); err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(dtos))
	for _, dto := range dtos {
		participants = append(participants, model.Participant{
			UserName: dto.UserName,
			JoinedAt: dto.JoinedAt,
		})
	}
	return participants, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
