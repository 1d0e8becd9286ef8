package invite

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/MrEthical07/pmAuth/permission"
)

type fakeCreator struct {
	mu      sync.Mutex
	calls   int
	path    string
	err     error
	release chan struct{}
}

func (f *fakeCreator) CreateInvite(ctx context.Context, email string, role permission.Role) (string, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	return f.path, f.err
}

func TestComposeLink(t *testing.T) {
	tests := []struct {
		origin, path, want string
	}{
		{"http://app.test", "/register?token=a", "http://app.test/register?token=a"},
		{"http://app.test/", "/register?token=a", "http://app.test/register?token=a"},
		{"http://app.test", "register?token=a", "http://app.test/register?token=a"},
		{"", "/register?token=a", "/register?token=a"},
		{"http://app.test", "https://other.test/register?token=a", "https://other.test/register?token=a"},
	}
	for _, tt := range tests {
		if got := ComposeLink(tt.origin, tt.path); got != tt.want {
			t.Fatalf("ComposeLink(%q, %q) = %q, want %q", tt.origin, tt.path, got, tt.want)
		}
	}
}

func TestTokenFromURL(t *testing.T) {
	if got := TokenFromURL("http://app.test/register?token=abc"); got != "abc" {
		t.Fatalf("token = %q", got)
	}
	if got := TokenFromURL("/register?token=abc"); got != "abc" {
		t.Fatalf("token = %q", got)
	}
	if got := TokenFromURL("/register"); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func TestIssuerComposesLinkWithOrigin(t *testing.T) {
	backend := &fakeCreator{path: "/register?token=tok-1"}
	iss := NewIssuer("http://app.test", backend)

	link, err := iss.Create(context.Background(), "bob@x.com", permission.RoleManager)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(link.URL, link.Path) || link.URL != "http://app.test/register?token=tok-1" {
		t.Fatalf("link = %+v", link)
	}
	if link.Token != "tok-1" {
		t.Fatalf("token = %q", link.Token)
	}
}

func TestIssuerRejectsInvalidInputWithoutCall(t *testing.T) {
	backend := &fakeCreator{path: "/register?token=x"}
	iss := NewIssuer("http://app.test", backend)

	cases := []struct {
		email string
		role  permission.Role
	}{
		{"", permission.RoleStaff},
		{"not-an-email", permission.RoleStaff},
		{"bob@x.com", ""},
		{"bob@x.com", permission.Role("OWNER")},
	}
	for _, c := range cases {
		if _, err := iss.Create(context.Background(), c.email, c.role); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Create(%q, %q): expected ErrInvalidInput, got %v", c.email, c.role, err)
		}
	}
	if backend.calls != 0 {
		t.Fatalf("backend called %d times", backend.calls)
	}
}

func TestIssuerBackendErrorReturnsNoLink(t *testing.T) {
	want := errors.New("User already exists")
	iss := NewIssuer("http://app.test", &fakeCreator{err: want})

	link, err := iss.Create(context.Background(), "bob@x.com", permission.RoleStaff)
	if !errors.Is(err, want) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if link != (Link{}) {
		t.Fatalf("expected zero link, got %+v", link)
	}
}

func TestIssuerRejectsConcurrentCreate(t *testing.T) {
	backend := &fakeCreator{path: "/register?token=x", release: make(chan struct{})}
	iss := NewIssuer("http://app.test", backend)

	done := make(chan error, 1)
	go func() {
		_, err := iss.Create(context.Background(), "bob@x.com", permission.RoleStaff)
		done <- err
	}()

	for {
		backend.mu.Lock()
		n := backend.calls
		backend.mu.Unlock()
		if n == 1 {
			break
		}
	}

	if _, err := iss.Create(context.Background(), "bob@x.com", permission.RoleStaff); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := iss.Create(context.Background(), "bob@x.com", permission.RoleStaff); err != nil {
		t.Fatalf("Create after release: %v", err)
	}
}
