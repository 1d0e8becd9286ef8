package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisBackendTest(t *testing.T) (*RedisBackend, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisBackend(rdb, "pm"), mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty backend, got %v", err)
	}
	if err := b.Save(ctx, DefaultKey, []byte("one")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := b.Save(ctx, DefaultKey, []byte("two")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, err := b.Load(ctx, DefaultKey)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("load = %q", got)
	}
	if err := b.Delete(ctx, DefaultKey); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := b.Delete(ctx, DefaultKey); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if _, err := b.Load(ctx, DefaultKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestRedisBackend(t *testing.T) {
	b, mr, done := newRedisBackendTest(t)
	defer done()
	exerciseBackend(t, b)

	if err := b.Save(context.Background(), DefaultKey, []byte("x")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !mr.Exists("pm:" + DefaultKey) {
		t.Fatal("expected prefixed key in redis")
	}
}

func TestRedisBackendUnavailable(t *testing.T) {
	b, mr, done := newRedisBackendTest(t)
	defer done()
	mr.Close()

	if _, err := b.Load(context.Background(), DefaultKey); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}

func TestRedisBackendStoreRoundTrip(t *testing.T) {
	b, _, done := newRedisBackendTest(t)
	defer done()
	ctx := context.Background()

	first := NewStore(b, Options{})
	first.Initialize(ctx)
	if err := first.Login(ctx, "tok-r", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	second := NewStore(b, Options{})
	if snap := second.Initialize(ctx); snap.Token != "tok-r" {
		t.Fatalf("restore from redis failed: %+v", snap)
	}
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestSQLiteBackendPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := NewStore(b, Options{})
	store.Initialize(ctx)
	if err := store.Login(ctx, "tok-s", testUser()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	snap := NewStore(reopened, Options{}).Initialize(ctx)
	if snap.Token != "tok-s" || snap.User.Name != "Ann" {
		t.Fatalf("restore from sqlite failed: %+v", snap)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
