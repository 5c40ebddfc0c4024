package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Restaurant is a single candidate fetched from the business-search
// provider and persisted for the lifetime of one session. The serial ID
// doubles as the voting order: candidates are served in insertion order.
type Restaurant struct {
	ID            int64
	SessionID     uuid.UUID
	ExternalID    string
	Name          string
	ImageURL      *string
	Address       *string
	Lat           *float64
	Lng           *float64
	Price         *string
	Rating        *float64
	ReviewCount   *int
	SourcePayload json.RawMessage
	CreatedAt     time.Time
}
