package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// SyncScheduler runs sync passes on a fixed interval while a session is
// active. It is process-wide: login starts it, logout stops it, no UI
// lifecycle involved. A tick is skipped entirely when the device is offline
// or a pass is already in flight.
type SyncScheduler struct {
	sync     SyncService
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	kick   chan struct{}
}

func NewSyncScheduler(syncService SyncService, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		sync:     syncService,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

func (s *SyncScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return // already running
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.cancel = nil
	s.mu.Unlock()
	s.wg.Wait()
}

// Kick requests an immediate pass without waiting for the next tick. The
// request is dropped if one is already queued.
func (s *SyncScheduler) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *SyncScheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.kick:
			s.runOnce()
		case <-ctx.Done():
			return
		}
	}
}

func (s *SyncScheduler) runOnce() {
	_, err := s.sync.RunSync()
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress),
		errors.Is(err, ErrOffline),
		errors.Is(err, ErrNotAuthenticated):
		// skipped tick, nothing to do
	default:
		log.Printf("Scheduled sync failed: %v", err)
	}
}
