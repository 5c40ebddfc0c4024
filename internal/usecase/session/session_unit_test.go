package usecase_session_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justinhuang159/Grubble/internal/model"
	. "github.com/justinhuang159/Grubble/internal/usecase/session"
	"github.com/justinhuang159/Grubble/internal/usecase/session/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SessionUsecaseUnitSuite struct {
	suite.Suite
}

func TestSessionUsecaseUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(SessionUsecaseUnitSuite))
}

type resources struct {
	usecase     *Usecase
	sessions    *mocks.SessionRepository
	restaurants *mocks.RestaurantRepository
	source      *mocks.RestaurantSource
	cache       *mocks.QueryCache
	ctx         context.Context
}

func initResources(t provider.T) *resources {
	sessions := mocks.NewSessionRepository(t)
	restaurants := mocks.NewRestaurantRepository(t)
	source := mocks.NewRestaurantSource(t)
	cache := mocks.NewQueryCache(t)

	return &resources{
		usecase:     New(sessions, restaurants, source, cache, 24*time.Hour),
		sessions:    sessions,
		restaurants: restaurants,
		source:      source,
		cache:       cache,
		ctx:         context.Background(),
	}
}

func strptr(s string) *string { return &s }

func waitingSession() model.Session {
	return model.Session{
		ID:           uuid.New(),
		RoomCode:     "AB12CD",
		HostName:     "Justin",
		Status:       model.StatusWaiting,
		Cuisine:      strptr("sushi"),
		LocationText: strptr("San Francisco, CA"),
		Participants: []model.Participant{{UserName: "Justin"}},
	}
}

func sourceBusinesses() []map[string]any {
	return []map[string]any{
		{"id": "rest-a", "name": "A Place", "location": map[string]any{"display_address": []any{"1 Main St"}}},
		{"id": "rest-b", "name": "B Place", "location": map[string]any{"display_address": []any{"2 Main St"}}},
	}
}

func (s *SessionUsecaseUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	t.Run("Should create session with well-formed room code", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		var created model.Session
		r.sessions.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Run(func(args mock.Arguments) { created = args.Get(1).(model.Session) }).
			Return(nil).Once()
		r.sessions.On("ByCode", r.ctx, mock.AnythingOfType("string")).
			Return(stored, nil).Once()

		result, err := r.usecase.Create(r.ctx, CreateParams{
			HostName: "Justin",
			Cuisine:  strptr("sushi"),
		})

		assert.NoError(t, err)
		assert.Equal(t, stored, result)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), created.RoomCode)
		assert.Equal(t, model.StatusWaiting, created.Status)
		assert.Equal(t, "Justin", created.HostName)
	})

	t.Run("Should retry on room code conflict", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(ErrCodeConflict).Twice()
		r.sessions.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(nil).Once()
		r.sessions.On("ByCode", r.ctx, mock.AnythingOfType("string")).
			Return(stored, nil).Once()

		_, err := r.usecase.Create(r.ctx, CreateParams{HostName: "Justin"})

		assert.NoError(t, err)
	})

	t.Run("Should give up after exhausting retries", func(t provider.T) {
		r := initResources(t)

		r.sessions.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(ErrCodeConflict).Times(CreateRetries)

		_, err := r.usecase.Create(r.ctx, CreateParams{HostName: "Justin"})

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("Should reject blank host name", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.Create(r.ctx, CreateParams{HostName: "  "})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func (s *SessionUsecaseUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	t.Run("Should append participant", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()
		joined := stored
		joined.Participants = append([]model.Participant{}, stored.Participants...)
		joined.Participants = append(joined.Participants, model.Participant{UserName: "Alex"})

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.sessions.On("AddParticipant", r.ctx, stored.ID, "Alex").Return(nil).Once()
		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(joined, nil).Once()

		result, err := r.usecase.Join(r.ctx, stored.RoomCode, "Alex")

		assert.NoError(t, err)
		assert.Equal(t, []string{"Justin", "Alex"}, result.ParticipantNames())
	})

	t.Run("Should return not found for unknown code", func(t provider.T) {
		r := initResources(t)

		r.sessions.On("ByCode", r.ctx, "ZZZZZZ").
			Return(model.Session{}, ErrResourceNotFound).Once()

		_, err := r.usecase.Join(r.ctx, "ZZZZZZ", "Alex")

		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("Should return conflict for duplicate name", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.sessions.On("AddParticipant", r.ctx, stored.ID, "Justin").
			Return(ErrConflict).Once()

		_, err := r.usecase.Join(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Should reject blank user name", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.Join(r.ctx, "AB12CD", "")

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func (s *SessionUsecaseUnitSuite) TestStart(t provider.T) {
	t.Parallel()

	t.Run("Should provision candidates and go active on cache miss", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{}, ErrCacheMiss).Once()
		r.source.On("Search", r.ctx, SearchQuery{Term: "sushi", Location: "San Francisco, CA"}).
			Return(sourceBusinesses(), nil).Once()
		r.cache.On("Put", r.ctx, "sushi|san francisco, ca||", mock.AnythingOfType("usecase_session.SearchQuery"), sourceBusinesses()).
			Return(nil).Once()

		var replaced []model.Restaurant
		r.restaurants.On("ReplaceForSession", r.ctx, stored.ID, mock.AnythingOfType("[]model.Restaurant")).
			Run(func(args mock.Arguments) { replaced = args.Get(2).([]model.Restaurant) }).
			Return([]model.Restaurant{}, nil).Once()
		r.sessions.On("SetStatus", r.ctx, stored.ID, model.StatusActive).Return(nil).Once()

		result, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusActive, result.Status)
		assert.Len(t, replaced, 2)
		assert.Equal(t, "rest-a", replaced[0].ExternalID)
		assert.Equal(t, "rest-b", replaced[1].ExternalID)
	})

	t.Run("Should reuse fresh cache entry without calling the source", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{Results: sourceBusinesses(), CreatedAt: time.Now()}, nil).Once()
		r.restaurants.On("ReplaceForSession", r.ctx, stored.ID, mock.AnythingOfType("[]model.Restaurant")).
			Return([]model.Restaurant{}, nil).Once()
		r.sessions.On("SetStatus", r.ctx, stored.ID, model.StatusActive).Return(nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.NoError(t, err)
		r.source.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Should refresh a stale cache entry", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{Results: sourceBusinesses(), CreatedAt: time.Now().Add(-25 * time.Hour)}, nil).Once()
		r.source.On("Search", r.ctx, SearchQuery{Term: "sushi", Location: "San Francisco, CA"}).
			Return(sourceBusinesses(), nil).Once()
		r.cache.On("Put", r.ctx, "sushi|san francisco, ca||", mock.AnythingOfType("usecase_session.SearchQuery"), sourceBusinesses()).
			Return(nil).Once()
		r.restaurants.On("ReplaceForSession", r.ctx, stored.ID, mock.AnythingOfType("[]model.Restaurant")).
			Return([]model.Restaurant{}, nil).Once()
		r.sessions.On("SetStatus", r.ctx, stored.ID, model.StatusActive).Return(nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.NoError(t, err)
	})

	t.Run("Should reject non-host", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Alex")

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Should reject non-waiting session", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()
		stored.Status = model.StatusActive

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Should require location before any source call", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()
		stored.LocationText = nil

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrValidation)
		r.source.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Should return not found when source has no candidates", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{}, ErrCacheMiss).Once()
		r.source.On("Search", r.ctx, SearchQuery{Term: "sushi", Location: "San Francisco, CA"}).
			Return([]map[string]any{}, nil).Once()
		r.cache.On("Put", r.ctx, "sushi|san francisco, ca||", mock.AnythingOfType("usecase_session.SearchQuery"), []map[string]any{}).
			Return(nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrResourceNotFound)
		r.sessions.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should keep session waiting on upstream failure", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{}, ErrCacheMiss).Once()
		r.source.On("Search", r.ctx, SearchQuery{Term: "sushi", Location: "San Francisco, CA"}).
			Return(nil, errors.Join(ErrUpstream, errors.New("provider returned 503"))).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrUpstream)
		r.sessions.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should surface missing credentials as configuration error", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "sushi|san francisco, ca||").
			Return(CachedQuery{}, ErrCacheMiss).Once()
		r.source.On("Search", r.ctx, SearchQuery{Term: "sushi", Location: "San Francisco, CA"}).
			Return(nil, ErrSourceNotConfigured).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.ErrorIs(t, err, ErrSourceNotConfigured)
		assert.NotErrorIs(t, err, ErrUpstream)
	})

	t.Run("Should fall back to generic term without cuisine", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()
		stored.Cuisine = nil

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.cache.On("Get", r.ctx, "restaurants|san francisco, ca||").
			Return(CachedQuery{Results: sourceBusinesses(), CreatedAt: time.Now()}, nil).Once()
		r.restaurants.On("ReplaceForSession", r.ctx, stored.ID, mock.AnythingOfType("[]model.Restaurant")).
			Return([]model.Restaurant{}, nil).Once()
		r.sessions.On("SetStatus", r.ctx, stored.ID, model.StatusActive).Return(nil).Once()

		_, err := r.usecase.Start(r.ctx, stored.RoomCode, "Justin")

		assert.NoError(t, err)
	})
}

func (s *SessionUsecaseUnitSuite) TestDelete(t provider.T) {
	t.Parallel()

	t.Run("Should delete as host", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()
		r.sessions.On("DeleteByCode", r.ctx, stored.RoomCode).Return(nil).Once()

		err := r.usecase.Delete(r.ctx, stored.RoomCode, "Justin")

		assert.NoError(t, err)
	})

	t.Run("Should reject non-host", func(t provider.T) {
		r := initResources(t)
		stored := waitingSession()

		r.sessions.On("ByCode", r.ctx, stored.RoomCode).Return(stored, nil).Once()

		err := r.usecase.Delete(r.ctx, stored.RoomCode, "Alex")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
