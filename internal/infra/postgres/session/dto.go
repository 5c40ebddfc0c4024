package infra_postgres_session

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/justinhuang159/Grubble/internal/model"
)

type sessionDTO struct {
	ID           uuid.UUID      `db:"id"`
	RoomCode     string         `db:"room_code"`
	HostName     string         `db:"host_name"`
	Status       string         `db:"status"`
	Cuisine      sql.NullString `db:"cuisine"`
	Price        sql.NullString `db:"price"`
	RadiusMeters sql.NullInt64  `db:"radius_meters"`
	LocationText sql.NullString `db:"location_text"`
	CreatedAt    time.Time      `db:"created_at"`
}

type participantDTO struct {
	UserName string    `db:"user_name"`
	JoinedAt time.Time `db:"joined_at"`
}

func fromModel(s model.Session) sessionDTO {
	return sessionDTO{
		ID:           s.ID,
		RoomCode:     s.RoomCode,
		HostName:     s.HostName,
		Status:       s.Status,
		Cuisine:      nullString(s.Cuisine),
		Price:        nullString(s.Price),
		RadiusMeters: nullInt(s.RadiusMeters),
		LocationText: nullString(s.LocationText),
	}
}

func (dto sessionDTO) toModel() model.Session {
	return model.Session{
		ID:           dto.ID,
		RoomCode:     dto.RoomCode,
		HostName:     dto.HostName,
		Status:       dto.Status,
		Cuisine:      stringPtr(dto.Cuisine),
		Price:        stringPtr(dto.Price),
		RadiusMeters: intPtr(dto.RadiusMeters),
		LocationText: stringPtr(dto.LocationText),
		CreatedAt:    dto.CreatedAt,
	}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
