package usecase_vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/justinhuang159/Grubble/internal/model"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("invalid request")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=SessionRepository --output=./mocks --filename=session_repository.go
type SessionRepository interface {
	ByCode(ctx context.Context, code string) (model.Session, error)
}

//go:generate mockery --name=RestaurantRepository --output=./mocks --filename=restaurant_repository.go
type RestaurantRepository interface {
	// BySession returns candidates in provisioning order.
	BySession(ctx context.Context, sessionID uuid.UUID) ([]model.Restaurant, error)
	ByID(ctx context.Context, sessionID uuid.UUID, restaurantID int64) (model.Restaurant, error)
}

//go:generate mockery --name=VoteRepository --output=./mocks --filename=vote_repository.go
type VoteRepository interface {
	Find(ctx context.Context, sessionID uuid.UUID, userName string, restaurantID int64) (model.Vote, error)
	// Insert surfaces a unique-constraint violation as ErrConflict, so a
	// concurrent duplicate loses cleanly instead of crashing.
	Insert(ctx context.Context, vote model.Vote) error
	TallyForRestaurant(ctx context.Context, sessionID uuid.UUID, restaurantID int64) (total int, yes int, err error)
	RestaurantIDsVotedBy(ctx context.Context, sessionID uuid.UUID, userName string) (map[int64]struct{}, error)
}

type Usecase struct {
	sessions    SessionRepository
	restaurants RestaurantRepository
	votes       VoteRepository
}

func New(
	sessions SessionRepository,
	restaurants RestaurantRepository,
	votes VoteRepository,
) *Usecase {
	return &Usecase{
		sessions:    sessions,
		restaurants: restaurants,
		votes:       votes,
	}
}

// NextCandidate returns the first candidate in provisioning order the
// participant has not voted on, or nil when they voted on everything.
func (u *Usecase) NextCandidate(ctx context.Context, code string, userName string) (*model.Restaurant, error) {
	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return nil, wrapInfra(err)
	}
	return u.nextForParticipant(ctx, session.ID, userName, nil)
}

// Submit records the vote and reports progress. Match is evaluated fresh
// on every call: a late joiner un-matches a previously unanimous candidate.
func (u *Usecase) Submit(ctx context.Context, code string, userName string, restaurantID int64, decision model.Decision) (model.VoteOutcome, error) {
	if decision != model.DecisionYes && decision != model.DecisionNo {
		return model.VoteOutcome{}, fmt.Errorf("%w: decision must be yes or no", ErrValidation)
	}

	session, err := u.sessions.ByCode(ctx, code)
	if err != nil {
		return model.VoteOutcome{}, wrapInfra(err)
	}

	if _, err := u.restaurants.ByID(ctx, session.ID, restaurantID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.VoteOutcome{}, fmt.Errorf("%w: restaurant does not belong to this session", ErrResourceNotFound)
		}
		return model.VoteOutcome{}, errors.Join(ErrInternal, err)
	}

	outcome := model.VoteOutcome{}

	existing, err := u.votes.Find(ctx, session.ID, userName, restaurantID)
	switch {
	case err == nil:
		if existing.Decision != decision {
			return model.VoteOutcome{}, fmt.Errorf("%w: cannot change a cast vote", ErrConflict)
		}
		outcome.Duplicate = true
	case errors.Is(err, ErrResourceNotFound):
		if err := u.votes.Insert(ctx, model.Vote{
			SessionID:       session.ID,
			ParticipantName: userName,
			RestaurantID:    restaurantID,
			Decision:        decision,
		}); err != nil {
			return model.VoteOutcome{}, wrapInfra(err)
		}
	default:
		return model.VoteOutcome{}, errors.Join(ErrInternal, err)
	}

	total, yes, err := u.votes.TallyForRestaurant(ctx, session.ID, restaurantID)
	if err != nil {
		return model.VoteOutcome{}, errors.Join(ErrInternal, err)
	}

	outcome.TotalParticipants = len(session.Participants)
	outcome.VotesForRestaurant = total
	outcome.YesVotesForRestaurant = yes
	if outcome.TotalParticipants > 0 && yes == outcome.TotalParticipants {
		outcome.Matched = true
		outcome.MatchedRestaurantID = &restaurantID
	}

	next, err := u.nextForParticipant(ctx, session.ID, userName, &restaurantID)
	if err != nil {
		return model.VoteOutcome{}, err
	}
	outcome.NextRestaurant = next

	return outcome, nil
}

// justVoted covers the read-your-own-write ordering against the store: the
// restaurant voted on in this request is always treated as voted.
func (u *Usecase) nextForParticipant(ctx context.Context, sessionID uuid.UUID, userName string, justVoted *int64) (*model.Restaurant, error) {
	candidates, err := u.restaurants.BySession(ctx, sessionID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	voted, err := u.votes.RestaurantIDsVotedBy(ctx, sessionID, userName)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if justVoted != nil {
		voted[*justVoted] = struct{}{}
	}

	for _, candidate := range candidates {
		if _, ok := voted[candidate.ID]; !ok {
			return &candidate, nil
		}
	}
	return nil, nil
}

func wrapInfra(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	return errors.Join(ErrInternal, err)
}
