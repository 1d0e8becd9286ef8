package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/pmAuth/permission"
)

func testUser() User {
	return User{
		ID:     "u-1",
		Name:   "Ann",
		Email:  "a@b.com",
		Role:   permission.RoleStaff,
		Status: permission.StatusActive,
	}
}

type failingBackend struct{}

func (failingBackend) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingBackend) Save(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func (failingBackend) Delete(context.Context, string) error {
	return errors.New("disk on fire")
}

// gatedBackend blocks Load until released.
type gatedBackend struct {
	*MemoryBackend
	gate    chan struct{}
	started chan struct{}
	once    sync.Once
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{
		MemoryBackend: NewMemoryBackend(),
		gate:          make(chan struct{}),
		started:       make(chan struct{}),
	}
}

func (g *gatedBackend) Load(ctx context.Context, key string) ([]byte, error) {
	g.once.Do(func() { close(g.started) })
	<-g.gate
	return g.MemoryBackend.Load(ctx, key)
}

func assertComplete(t *testing.T, s Session) {
	t.Helper()
	if (s.Token == "") != (s.User == nil) {
		t.Fatalf("partial session: token=%q user=%v", s.Token, s.User)
	}
}

func TestNewStoreStartsLoading(t *testing.T) {
	store := NewStore(nil, Options{})
	snap := store.Snapshot()
	if !snap.Loading {
		t.Fatal("new store must report loading until initialized")
	}
	if snap.Authenticated() {
		t.Fatal("new store must be empty")
	}
}

func TestInitializeWithoutPersistedSession(t *testing.T) {
	store := NewStore(NewMemoryBackend(), Options{})
	snap := store.Initialize(context.Background())
	if snap.Loading {
		t.Fatal("initialize must resolve loading")
	}
	if snap.Authenticated() {
		t.Fatal("expected empty session")
	}
	assertComplete(t, snap)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), Options{})
	store.Initialize(ctx)

	if err := store.Login(ctx, "tok-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	snap := store.Snapshot()
	if snap.Token != "tok-1" {
		t.Fatalf("token = %q", snap.Token)
	}
	if snap.User == nil || *snap.User != testUser() {
		t.Fatalf("user = %+v", snap.User)
	}
	if snap.Loading {
		t.Fatal("login must clear loading")
	}
}

func TestLoginBeforeInitializeClearsLoading(t *testing.T) {
	store := NewStore(nil, Options{})
	if err := store.Login(context.Background(), "tok-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if store.Snapshot().Loading {
		t.Fatal("login must clear loading")
	}
}

func TestLoginRejectsPartialInput(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, Options{})
	store.Initialize(ctx)

	if err := store.Login(ctx, "", testUser()); !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
	if err := store.Login(ctx, "tok", User{}); !errors.Is(err, ErrUserRequired) {
		t.Fatalf("expected ErrUserRequired, got %v", err)
	}
	snap := store.Snapshot()
	if snap.Authenticated() {
		t.Fatal("rejected login must not change the session")
	}
	assertComplete(t, snap)
}

func TestLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store := NewStore(backend, Options{})
	store.Initialize(ctx)
	_ = store.Login(ctx, "tok-1", testUser())

	store.Logout(ctx)
	once := store.Snapshot()
	store.Logout(ctx)
	twice := store.Snapshot()

	if once.Authenticated() || twice.Authenticated() {
		t.Fatal("logout must clear the session")
	}
	if once.Loading != twice.Loading || once.Token != twice.Token || (once.User == nil) != (twice.User == nil) {
		t.Fatalf("second logout changed state: %+v vs %+v", once, twice)
	}
	if _, err := backend.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("logout must remove persisted copy, got %v", err)
	}
}

func TestLogoutWhenNeverLoggedIn(t *testing.T) {
	store := NewStore(nil, Options{})
	store.Logout(context.Background())
	if store.Snapshot().Authenticated() {
		t.Fatal("expected empty session")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	first := NewStore(backend, Options{})
	first.Initialize(ctx)
	if err := first.Login(ctx, "tok-1", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second := NewStore(backend, Options{})
	snap := second.Initialize(ctx)
	if !snap.Authenticated() || snap.Token != "tok-1" || snap.User.Email != "a@b.com" {
		t.Fatalf("restore mismatch: %+v", snap)
	}
}

func TestRestoreFailureIsNoSession(t *testing.T) {
	store := NewStore(failingBackend{}, Options{})
	snap := store.Initialize(context.Background())
	if snap.Loading || snap.Authenticated() {
		t.Fatalf("failed restore must resolve to empty session: %+v", snap)
	}
}

func TestPersistFailureStillLogsIn(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingBackend{}, Options{})
	store.Initialize(ctx)
	if err := store.Login(ctx, "tok-1", testUser()); err != nil {
		t.Fatalf("persistence errors must be swallowed, got %v", err)
	}
	if !store.Snapshot().Authenticated() {
		t.Fatal("expected in-memory session")
	}
	store.Logout(ctx)
	if store.Snapshot().Authenticated() {
		t.Fatal("logout must clear despite delete failure")
	}
}

func TestCorruptRecordDiscarded(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	_ = backend.Save(ctx, DefaultKey, []byte{9, '{', '}'})

	store := NewStore(backend, Options{})
	snap := store.Initialize(ctx)
	if snap.Authenticated() {
		t.Fatal("corrupt record must not restore")
	}
	if _, err := backend.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt record should be deleted, got %v", err)
	}
}

func TestExpiredJWTDiscardedOnRestore(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	data, _ := Encode(tok, testUser())
	_ = backend.Save(ctx, DefaultKey, data)

	kept := NewStore(backend, Options{DiscardExpired: false})
	if !kept.Initialize(ctx).Authenticated() {
		t.Fatal("expiry check disabled: session should restore")
	}

	store := NewStore(backend, Options{DiscardExpired: true, ExpiryLeeway: time.Second})
	if store.Initialize(ctx).Authenticated() {
		t.Fatal("expired token should be discarded")
	}
	if _, err := backend.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired record should be deleted, got %v", err)
	}
}

func TestSlowRestoreDoesNotOverrideLogin(t *testing.T) {
	ctx := context.Background()
	backend := newGatedBackend()
	old, _ := Encode("old-token", testUser())
	_ = backend.MemoryBackend.Save(ctx, DefaultKey, old)

	store := NewStore(backend, Options{})
	done := make(chan Session)
	go func() { done <- store.Initialize(ctx) }()

	<-backend.started
	fresh := testUser()
	fresh.ID = "u-2"
	if err := store.Login(ctx, "new-token", fresh); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	close(backend.gate)
	<-done

	snap := store.Snapshot()
	if snap.Token != "new-token" || snap.User.ID != "u-2" {
		t.Fatalf("restore overwrote newer login: %+v", snap)
	}
}

func TestInvalidateTokenIgnoresReplacedToken(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, Options{})
	store.Initialize(ctx)
	_ = store.Login(ctx, "tok-2", testUser())

	if store.InvalidateToken(ctx, "tok-1") {
		t.Fatal("stale token must not invalidate the current session")
	}
	if !store.Snapshot().Authenticated() {
		t.Fatal("session should survive")
	}
	if !store.InvalidateToken(ctx, "tok-2") {
		t.Fatal("current token should invalidate")
	}
	if store.Snapshot().Authenticated() {
		t.Fatal("session should be cleared")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, Options{})
	_ = store.Login(ctx, "tok-1", testUser())

	snap := store.Snapshot()
	snap.User.Role = permission.RoleAdmin

	if store.Snapshot().User.Role != permission.RoleStaff {
		t.Fatal("snapshot mutation leaked into the store")
	}
}

func TestConcurrentMutationsNeverPartial(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, Options{})
	store.Initialize(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = store.Login(ctx, "tok", testUser())
				store.Logout(ctx)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if snap := store.Snapshot(); (snap.Token == "") != (snap.User == nil) {
					t.Errorf("partial session observed: %+v", snap)
					return
				}
			}
		}()
	}
	wg.Wait()
}
