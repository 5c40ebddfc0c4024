package infra_postgres_vote

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/justinhuang159/Grubble/internal/model"
)

type sessionDTO struct {
	ID       uuid.UUID `db:"id"`
	RoomCode string    `db:"room_code"`
	HostName string    `db:"host_name"`
	Status   string    `db:"status"`
}

type participantDTO struct {
	UserName string    `db:"user_name"`
	JoinedAt time.Time `db:"joined_at"`
}

type restaurantDTO struct {
	ID          int64           `db:"id"`
	SessionID   uuid.UUID       `db:"session_id"`
	ExternalID  string          `db:"external_id"`
	Name        string          `db:"name"`
	ImageURL    sql.NullString  `db:"image_url"`
	Address     sql.NullString  `db:"address"`
	Lat         sql.NullFloat64 `db:"lat"`
	Lng         sql.NullFloat64 `db:"lng"`
	Price       sql.NullString  `db:"price"`
	Rating      sql.NullFloat64 `db:"rating"`
	ReviewCount sql.NullInt64   `db:"review_count"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (dto restaurantDTO) toModel() model.Restaurant {
	return model.Restaurant{
		ID:          dto.ID,
		SessionID:   dto.SessionID,
		ExternalID:  dto.ExternalID,
		Name:        dto.Name,
		ImageURL:    stringPtr(dto.ImageURL),
		Address:     stringPtr(dto.Address),
		Lat:         floatPtr(dto.Lat),
		Lng:         floatPtr(dto.Lng),
		Price:       stringPtr(dto.Price),
		Rating:      floatPtr(dto.Rating),
		ReviewCount: intPtr(dto.ReviewCount),
		CreatedAt:   dto.CreatedAt,
	}
}

type voteDTO struct {
	ID              int64     `db:"id"`
	SessionID       uuid.UUID `db:"session_id"`
	ParticipantName string    `db:"participant_name"`
	RestaurantID    int64     `db:"restaurant_id"`
	Decision        string    `db:"decision"`
	CreatedAt       time.Time `db:"created_at"`
}

func (dto voteDTO) toModel() model.Vote {
	return model.Vote{
		ID:              dto.ID,
		SessionID:       dto.SessionID,
		ParticipantName: dto.ParticipantName,
		RestaurantID:    dto.RestaurantID,
		Decision:        dto.Decision,
		CreatedAt:       dto.CreatedAt,
	}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
