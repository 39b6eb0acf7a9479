package memory

import (
	"context"
	"sync"
	"time"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type swipeKey struct {
	userID   uuid.UUID
	targetID uuid.UUID
	venueID  uuid.UUID
}

type matchRepository struct {
	mu sync.Mutex

	byID    map[uuid.UUID]*entity.Match
	bySwipe map[swipeKey]*entity.Match
	order   []uuid.UUID
}

// NewMatchRepository creates an empty in-memory match store.
func NewMatchRepository() repository.MatchRepository {
	return &matchRepository{
		byID:    make(map[uuid.UUID]*entity.Match),
		bySwipe: make(map[swipeKey]*entity.Match),
	}
}

func cloneMatch(m *entity.Match) *entity.Match {
	cp := *m
	if m.MatchedAt != nil {
		at := *m.MatchedAt
		cp.MatchedAt = &at
	}

	return &cp
}

func (r *matchRepository) RecordSwipe(_ context.Context, match *entity.Match) (*entity.Match, *entity.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := swipeKey{userID: match.UserID, targetID: match.TargetID, venueID: match.VenueID}
	stored, ok := r.bySwipe[key]
	switch {
	case ok && stored.Status != entity.MatchExpired:
		return cloneMatch(stored), nil, true, nil
	case ok:
		// Swiping again after expiry restarts the pair on the stored record.
		stored.Status = match.Status
		stored.CreatedAt = match.CreatedAt
		stored.MatchedAt = nil
	default:
		stored = cloneMatch(match)
		r.byID[stored.ID] = stored
		r.bySwipe[key] = stored
		r.order = append(r.order, stored.ID)
	}

	// A pending swipe meeting the reverse pending swipe completes the match.
	// Both records flip under the same lock so no concurrent swipe can see a
	// half-completed pair.
	if stored.Status == entity.MatchPending {
		reverseKey := swipeKey{userID: match.TargetID, targetID: match.UserID, venueID: match.VenueID}
		if reverse, ok := r.bySwipe[reverseKey]; ok && reverse.Status == entity.MatchPending {
			now := time.Now()
			stored.Status = entity.MatchMatched
			stored.MatchedAt = &now
			reverse.Status = entity.MatchMatched
			reverse.MatchedAt = &now

			return cloneMatch(stored), cloneMatch(reverse), false, nil
		}
	}

	return cloneMatch(stored), nil, false, nil
}

func (r *matchRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrMatchNotFound
	}

	return cloneMatch(match), nil
}

func (r *matchRepository) FindBetween(_ context.Context, userA, userB uuid.UUID) ([]*entity.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*entity.Match
	for _, id := range r.order {
		m := r.byID[id]
		if (m.UserID == userA && m.TargetID == userB) || (m.UserID == userB && m.TargetID == userA) {
			matches = append(matches, cloneMatch(m))
		}
	}

	return matches, nil
}

func (r *matchRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]*entity.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*entity.Match
	for _, id := range r.order {
		m := r.byID[id]
		if m.UserID == userID || m.TargetID == userID {
			matches = append(matches, cloneMatch(m))
		}
	}

	return matches, nil
}

func (r *matchRepository) ExpirePendingBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for _, m := range r.byID {
		if m.Status == entity.MatchPending && m.CreatedAt.Before(cutoff) {
			m.Status = entity.MatchExpired
			expired++
		}
	}

	return expired, nil
}
