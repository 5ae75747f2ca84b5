package services

import (
	"log"
	"time"

	"distrisync/internal/redis"
	"distrisync/pkg/backend"

	"golang.org/x/crypto/bcrypt"
)

const activeSessionID = "active"

// SessionService owns the vendor's session lifecycle. Login populates the
// session and starts the periodic sync; logout clears it and stops the sync.
// A bcrypt hash of the password is cached so OfflineLogin can unlock the
// cached session when the backend is unreachable.
type SessionService interface {
	Login(email, password string) (*redis.SessionData, error)
	OfflineLogin(email, password string) (*redis.SessionData, error)
	Logout() error
	Current() (*redis.SessionData, error)
	Token() (string, error)
	AttachScheduler(scheduler *SyncScheduler)
}

type sessionService struct {
	api       *backend.Client
	cache     *redis.Client
	scheduler *SyncScheduler
	ttl       time.Duration
}

func NewSessionService(api *backend.Client, cache *redis.Client, ttl time.Duration) SessionService {
	return &sessionService{api: api, cache: cache, ttl: ttl}
}

// AttachScheduler wires the periodic sync runner; called once during startup
// (the scheduler itself depends on the sync service, which needs this
// service for tokens).
func (s *sessionService) AttachScheduler(scheduler *SyncScheduler) {
	s.scheduler = scheduler
}

func (s *sessionService) Login(email, password string) (*redis.SessionData, error) {
	resp, err := s.api.Login(email, password)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &redis.SessionData{
		UserID:       resp.User.ID,
		Nombre:       resp.User.Nombre,
		Email:        resp.User.Email,
		Token:        resp.Token,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.cache.SetSession(activeSessionID, session, s.ttl); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		s.scheduler.Start()
	}
	return session, nil
}

// OfflineLogin verifies the password against the cached hash and restores
// the cached session without touching the network.
func (s *sessionService) OfflineLogin(email, password string) (*redis.SessionData, error) {
	session, err := s.cache.GetSession(activeSessionID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	if session.Email != email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(session.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.cache.SetSession(activeSessionID, session, s.ttl); err != nil {
		return nil, err
	}

	if s.scheduler != nil {
		s.scheduler.Start()
	}
	return session, nil
}

func (s *sessionService) Logout() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if err := s.cache.DeleteTempData(lastSummaryKey); err != nil {
		log.Printf("Warning: failed to clear cached sync summary: %v", err)
	}
	return s.cache.DeleteSession(activeSessionID)
}

func (s *sessionService) Current() (*redis.SessionData, error) {
	session, err := s.cache.GetSession(activeSessionID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

func (s *sessionService) Token() (string, error) {
	session, err := s.Current()
	if err != nil {
		return "", err
	}
	return session.Token, nil
}
