package usecase_session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justinhuang159/Grubble/internal/model"
)

var (
	ErrResourceNotFound    = errors.New("no such resource")
	ErrCodeConflict        = errors.New("room code conflict")
	ErrConflict            = errors.New("conflict")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("invalid request")
	ErrSourceNotConfigured = errors.New("restaurant source not configured")
	ErrUpstream            = errors.New("restaurant source failure")
	ErrCacheMiss           = errors.New("cache miss")
	ErrInternal            = errors.New("internal error")
)

//go:generate mockery --name=SessionRepository --output=./mocks --filename=session_repository.go
type SessionRepository interface {
	// Create inserts the session together with its host participant.
	// A duplicate room code surfaces as ErrCodeConflict.
	Create(ctx context.Context, session model.Session) error
	ByCode(ctx context.Context, code string) (model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	// AddParticipant surfaces a duplicate user name as ErrConflict.
	AddParticipant(ctx context.Context, sessionID uuid.UUID, userName string) error
	SetStatus(ctx context.Context, sessionID uuid.UUID, status model.SessionStatus) error
	DeleteByCode(ctx context.Context, code string) error
}

//go:generate mockery --name=RestaurantRepository --output=./mocks --filename=restaurant_repository.go
type RestaurantRepository interface {
	// ReplaceForSession wholesale replaces the session's candidates,
	// preserving slice order as the voting order.
	ReplaceForSession(ctx context.Context, sessionID uuid.UUID, restaurants []model.Restaurant) ([]model.Restaurant, error)
}

type SearchQuery struct {
	Term         string
	Location     string
	Price        string
	RadiusMeters int
}

//go:generate mockery --name=RestaurantSource --output=./mocks --filename=restaurant_source.go
type RestaurantSource interface {
	Search(ctx context.Context, q SearchQuery) ([]map[string]any, error)
}

type CachedQuery struct {
	Results   []map[string]any
	CreatedAt time.Time
}

//go:generate mockery --name=QueryCache --output=./mocks --filename=query_cache.go
type QueryCache interface {
	// Get returns ErrCacheMiss when no entry exists for the key.
	Get(ctx context.Context, key string) (CachedQuery, error)
	Put(ctx context.Context, key string, q SearchQuery, results []map[string]any) error
}

type CreateParams struct {
	HostName     string
	Cuisine      *string
	Price        *string
	RadiusMeters *int
	LocationText *string
}

type Usecase struct {
	sessions    SessionRepository
	restaurants RestaurantRepository
	source      RestaurantSource
	cache       QueryCache
	cacheTTL    time.Duration
}

func New(
	sessions SessionRepository,
	restaurants RestaurantRepository,
	source RestaurantSource,
	cache QueryCache,
	cacheTTL time.Duration,
) *Usecase {
	return &Usecase{
		sessions:    sessions,
		restaurants: restaurants,
		source:      source,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

const (
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	createRetries = 50
)

func (u *Usecase) Create(ctx context.Context, p CreateParams) (model.Session, error) {
	if strings.TrimSpace(p.HostName) == "" {
		return model.Session{}, fmt.Errorf("%w: host_name is required", ErrValidation)
	}

	// Assuming that codes can conflict. Retrying.
	for retries := createRetries; retries > 0; retries-- {
		session := model.Session{
			ID:           uuid.New(),
			RoomCode:     u.buildRoomCode(),
			HostName:     p.HostName,
			Status:       model.StatusWaiting,
			Cuisine:      p.Cuisine,
			Price:        p.Price,
			RadiusMeters: p.RadiusMeters,
			LocationText: p.LocationText,
		}
		if err := u.sessions.Create(ctx, session); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				continue
			}
			return model.Session{}, errors.Join(ErrInternal, err)
		}
		return u.Get(ctx, session.RoomCode)
	}
	return model.Session{}, errors.Join(ErrInternal, ErrCodeConflict)
}

func (u *Usecase) buildRoomCode() string {
	var builder strings.Builder
	builder.Grow(model.RoomCodeLength)

	for i := 0; i < model.RoomCodeLength; i++ {
		builder.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}

	return builder.String()
}

// Join appends a participant. There is intentionally no status check:
// late joiners are allowed even after the session went active.
func (u *Usecase) Join(ctx context.Context, code string, userName string) (model.Session, error) {
	if strings.TrimSpace(userName) == "" {
		return model.Session{}, fmt.Errorf("%w: user_name is required", ErrValidation)
	}

	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return model.Session{}, wrapInfra(err)
	}

	if err := u.sessions.AddParticipant(ctx, session.ID, userName); err != nil {
		if errors.Is(err, ErrConflict) {
			return model.Session{}, fmt.Errorf("%w: %q already joined this session", ErrConflict, userName)
		}
		return model.Session{}, wrapInfra(err)
	}

	return u.Get(ctx, code)
}

// Start is host-gated and all-or-nothing: any provisioning failure leaves
// the session in waiting.
func (u *Usecase) Start(ctx context.Context, code string, hostName string) (model.Session, error) {
	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return model.Session{}, wrapInfra(err)
	}

	if session.HostName != hostName {
		return model.Session{}, fmt.Errorf("%w: only the host can start the session", ErrForbidden)
	}
	if session.Status != model.StatusWaiting {
		return model.Session{}, fmt.Errorf("%w: session is not in waiting status", ErrConflict)
	}

	candidates, err := u.provisionCandidates(ctx, session)
	if err != nil {
		return model.Session{}, err
	}
	if _, err := u.restaurants.ReplaceForSession(ctx, session.ID, candidates); err != nil {
		return model.Session{}, errors.Join(ErrInternal, err)
	}

	if err := u.sessions.SetStatus(ctx, session.ID, model.StatusActive); err != nil {
		return model.Session{}, wrapInfra(err)
	}

	session.Status = model.StatusActive
	return session, nil
}

func (u *Usecase) Get(ctx context.Context, code string) (model.Session, error) {
	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return model.Session{}, wrapInfra(err)
	}
	return session, nil
}

func (u *Usecase) List(ctx context.Context) ([]model.Session, error) {
	sessions, err := u.sessions.List(ctx)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return sessions, nil
}

// Delete removes the session; participants, candidates and votes go with
// it via the store's cascading foreign keys.
func (u *Usecase) Delete(ctx context.Context, code string, hostName string) error {
	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return wrapInfra(err)
	}
	if session.HostName != hostName {
		return fmt.Errorf("%w: only the host can delete the session", ErrForbidden)
	}
	return wrapInfra(u.sessions.DeleteByCode(ctx, code))
}

func wrapInfra(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrCodeConflict) {
		return err
	}
	return errors.Join(ErrInternal, err)
}
