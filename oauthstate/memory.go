package oauthstate

import (
	"context"
	"sync"
	"time"

	"github.com/ffaiyaz23/boltgo/response"
	"github.com/lithammer/shortuuid/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type entry struct {
	issuedAt time.Time
	consumed bool
}

// MemoryStore is a map-backed Store. Expired entries are swept
// periodically by a cron job rather than checked only lazily on Consume,
// so a long-lived process doesn't accumulate unconsumed tokens forever.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*entry
	expiration time.Duration
	cron       *cron.Cron
}

// NewMemoryStore builds a MemoryStore with the given TTL (DefaultExpiration
// if zero) and starts a background sweep once a minute.
func NewMemoryStore(expiration time.Duration) *MemoryStore {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	s := &MemoryStore{
		entries:    make(map[string]*entry),
		expiration: expiration,
		cron:       cron.New(),
	}
	_, err := s.cron.AddFunc("@every 1m", s.sweep)
	if err != nil {
		zap.L().Error("oauthstate: failed to schedule sweep", zap.Error(err))
	}
	s.cron.Start()
	return s
}

// Stop halts the background sweep. Safe to call more than once.
func (s *MemoryStore) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *MemoryStore) Issue(_ context.Context, _ *response.Response) (string, error) {
	state := shortuuid.New()
	s.mu.Lock()
	s.entries[state] = &entry{issuedAt: time.Now()}
	s.mu.Unlock()
	return state, nil
}

func (s *MemoryStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[state]
	if !ok || e.consumed {
		return false, nil
	}
	if time.Since(e.issuedAt) > s.expiration {
		delete(s.entries, state)
		return false, nil
	}
	e.consumed = true
	delete(s.entries, state) // single-use: no point keeping a consumed token
	return true, nil
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.expiration)
	for state, e := range s.entries {
		if e.issuedAt.Before(cutoff) {
			delete(s.entries, state)
		}
	}
}
