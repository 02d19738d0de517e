package session

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"budget/internal/cache"
	"budget/internal/log"
)

// Config holds session manager settings.
type Config struct {
	CookieName  string
	TTL         time.Duration
	MaxSessions int
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		CookieName:  "budget_session",
		TTL:         2 * time.Hour,
		MaxSessions: 1000,
	}
}

// Manager maps session cookies to stores. Idle sessions expire after TTL and
// the least recently used session is dropped when MaxSessions is exceeded.
type Manager struct {
	cfg      Config
	sessions *cache.LRUCache[*Store]
	logger   *log.Logger

	started atomic.Int64
	ended   atomic.Int64
}

// NewManager creates a session manager.
func NewManager(cfg Config, logger *log.Logger) *Manager {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	m := &Manager{
		cfg:      cfg,
		sessions: cache.NewLRUCache[*Store](cfg.MaxSessions, cfg.TTL),
		logger:   logger.WithComponent(log.ComponentSession),
	}
	m.sessions.OnEvict(func(id string, s *Store, reason cache.EvictReason) {
		m.ended.Add(1)
		m.logger.Info("Session ended",
			log.FieldSessionID, id,
			log.FieldReason, string(reason),
			log.FieldTransactions, s.Len(),
			"age", time.Since(s.CreatedAt()).Round(time.Second).String())
	})
	return m
}

// Current returns the live store named by the request's session cookie and
// refreshes the cookie. It never creates a session.
func (m *Manager) Current(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	s, ok := m.Lookup(c.Value)
	if !ok {
		return nil, false
	}
	m.setCookie(w, s.ID())
	return s, true
}

// Pending returns an empty store with a fresh id that is not yet tracked.
// Pass it to Start once it holds something worth keeping.
func (m *Manager) Pending() *Store {
	return NewStore(uuid.NewString())
}

// Start begins tracking s and hands its cookie to the client.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, s *Store) {
	m.sessions.Set(s.ID(), s)
	m.started.Add(1)
	m.setCookie(w, s.ID())
	m.logger.DebugContext(r.Context(), "Session started", log.FieldSessionID, s.ID())
}

// Lookup returns the live store with the given id, if any.
func (m *Manager) Lookup(id string) (*Store, bool) {
	return m.sessions.Get(id)
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Cleaner exposes the backing cache to a cache.Manager sweep loop.
func (m *Manager) Cleaner() cache.Cleaner {
	return m.sessions
}

// Active returns the number of live sessions.
func (m *Manager) Active() int {
	return m.sessions.Size()
}

// Metrics snapshot for /metrics.
type Metrics struct {
	Active  int
	Started int64
	Ended   int64
}

func (m *Manager) GetMetrics() Metrics {
	return Metrics{
		Active:  m.Active(),
		Started: m.started.Load(),
		Ended:   m.ended.Load(),
	}
}
