package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/MrEthical07/pmAuth/jwt"
)

// ErrTokenRequired is returned by Login when the token is empty.
var ErrTokenRequired = errors.New("session token required")

// ErrUserRequired is returned by Login when the user has no id.
var ErrUserRequired = errors.New("session user required")

// Options configures a Store.
type Options struct {
	// Key is the persisted record name. Defaults to DefaultKey.
	Key string
	// DiscardExpired drops a restored JWT-shaped token whose exp has passed.
	DiscardExpired bool
	// ExpiryLeeway tolerates clock skew when DiscardExpired is set.
	ExpiryLeeway time.Duration
	// Logger receives swallowed persistence failures. Defaults to discard.
	Logger *log.Logger
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

// Store owns the client session.
//
// A Store starts in the loading state. It is safe for concurrent use; each
// mutation replaces token and user together under one lock.
type Store struct {
	backend Backend
	opts    Options

	// writeMu orders persistence writes with the in-memory mutation they follow.
	writeMu sync.Mutex

	mu          sync.RWMutex
	token       string
	user        *User
	loading     bool
	initialized bool
	// epoch advances on every explicit mutation so a slow restore cannot
	// overwrite a newer login or logout.
	epoch uint64
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore performs no I/O. A nil backend is replaced by a fresh MemoryBackend.
func NewStore(backend Backend, opts Options) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		backend: backend,
		opts:    opts,
		loading: true,
	}
}

// Initialize restores a previously persisted session.
//
// Only the first call reads the backend; later calls return the current
// snapshot. Any read or decode failure resolves to the empty session.
func (s *Store) Initialize(ctx context.Context) Session {
	s.mu.Lock()
	if s.initialized {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.initialized = true
	epoch := s.epoch
	s.mu.Unlock()

	token, user, ok, stale := s.restore(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	if ok {
		s.token = token
		s.user = &user
	}
	s.loading = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if stale {
		s.deletePersisted(ctx)
	}
	return snap
}

// restore reads and decodes the persisted record. stale reports a record that
// exists but must be removed.
func (s *Store) restore(ctx context.Context) (token string, user User, ok bool, stale bool) {
	data, err := s.backend.Load(ctx, s.opts.Key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.opts.Logger.Printf("pmAuth: session restore failed: %v", err)
		}
		return "", User{}, false, false
	}

	token, user, err = Decode(data)
	if err != nil {
		s.opts.Logger.Print("pmAuth: persisted session unreadable, discarding")
		return "", User{}, false, true
	}

	if s.opts.DiscardExpired && jwt.Expired(token, s.opts.Now(), s.opts.ExpiryLeeway) {
		return "", User{}, false, true
	}

	return token, user, true, false
}

// Login stores token and user atomically and persists them.
//
// No credential validation happens here; the caller already obtained both from
// a successful authentication round trip. Persistence failures are logged only.
func (s *Store) Login(ctx context.Context, token string, user User) error {
	if token == "" {
		return ErrTokenRequired
	}
	if user.ID == "" {
		return ErrUserRequired
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.loading = false
	s.epoch++
	s.mu.Unlock()

	data, err := Encode(token, user)
	if err != nil {
		s.opts.Logger.Printf("pmAuth: session encode failed: %v", err)
		return nil
	}
	if err := s.backend.Save(ctx, s.opts.Key, data); err != nil {
		s.opts.Logger.Printf("pmAuth: session persist failed: %v", err)
	}
	return nil
}

// Logout clears the session and its persisted copy. It is safe to call at any
// time, including when already logged out.
func (s *Store) Logout(ctx context.Context) {
	s.Invalidate(ctx)
}

// Invalidate clears the session like Logout and reports whether a session was
// present. It is used when a request proves the token invalid.
func (s *Store) Invalidate(ctx context.Context) bool {
	return s.clear(ctx, "")
}

// InvalidateToken clears the session only if it still holds token. A late 401
// for a token already replaced by a new login must not log the new session out.
func (s *Store) InvalidateToken(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	return s.clear(ctx, token)
}

func (s *Store) clear(ctx context.Context, onlyToken string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if onlyToken != "" && s.token != onlyToken {
		s.mu.Unlock()
		return false
	}
	had := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.loading = false
	s.epoch++
	s.mu.Unlock()

	s.deletePersisted(ctx)
	return had
}

func (s *Store) deletePersisted(ctx context.Context) {
	if err := s.backend.Delete(ctx, s.opts.Key); err != nil {
		s.opts.Logger.Printf("pmAuth: session delete failed: %v", err)
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) snapshotLocked() Session {
	snap := Session{Token: s.token, Loading: s.loading}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
