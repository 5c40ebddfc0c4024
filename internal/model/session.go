package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus = string

const (
	StatusWaiting SessionStatus = "waiting"
	StatusActive  SessionStatus = "active"
)

const RoomCodeLength = 6

type Session struct {
	ID           uuid.UUID
	RoomCode     string
	HostName     string
	Status       SessionStatus
	Cuisine      *string
	Price        *string
	RadiusMeters *int
	LocationText *string
	CreatedAt    time.Time

	Participants []Participant
}

// ParticipantNames preserves join order.
func (s Session) ParticipantNames() []string {
	names := make([]string, 0, len(s.Participants))
	for _, p := range s.Participants {
		names = append(names, p.UserName)
	}
	return names
}

type Participant struct {
	UserName string
	JoinedAt time.Time
}
