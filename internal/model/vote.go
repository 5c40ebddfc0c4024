package model

import (
	"time"

	"github.com/google/uuid"
)

type Decision = string

const (
	DecisionYes Decision = "yes"
	DecisionNo  Decision = "no"
)

// Votes are immutable once cast. A repeat with the same decision is a
// no-op, a repeat with the opposite decision is a conflict.
type Vote struct {
	ID              int64
	SessionID       uuid.UUID
	ParticipantName string
	RestaurantID    int64
	Decision        Decision
	CreatedAt       time.Time
}

type VoteOutcome struct {
	Duplicate             bool
	Matched               bool
	MatchedRestaurantID   *int64
	TotalParticipants     int
	VotesForRestaurant    int
	YesVotesForRestaurant int
	NextRestaurant        *Restaurant
}
