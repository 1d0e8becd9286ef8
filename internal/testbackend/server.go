package testbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

// Route names accepted by Calls.
const (
	RouteLogin          = "POST /auth/login"
	RouteInvite         = "POST /auth/invite"
	RouteValidateInvite = "POST /auth/validate-invite"
	RouteRegister       = "POST /auth/register"
	RouteListUsers      = "GET /users"
	RouteUserRole       = "PATCH /users/{id}/role"
	RouteUserStatus     = "PATCH /users/{id}/status"
)

// User is an account held by the fake.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
	Status   string
}

type invite struct {
	email    string
	role     string
	consumed bool
}

// Registration is a captured register request body.
type Registration struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Server is a running fake backend.
type Server struct {
	srv *httptest.Server

	// LegacyIDs makes user payloads carry only "_id".
	LegacyIDs bool

	mu            sync.Mutex
	users         map[string]*User
	sessions      map[string]string
	invites       map[string]*invite
	calls         map[string]int
	headers       map[string]http.Header
	registrations []Registration
	// beforeHandle runs with mu unlocked before each request is served.
	beforeHandle func(route string)
}

// New starts a fake backend that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]*User),
		sessions: make(map[string]string),
		invites:  make(map[string]*invite),
		calls:    make(map[string]int),
		headers:  make(map[string]http.Header),
	}

	mux := http.NewServeMux()
	s.handle(mux, RouteLogin, s.login)
	s.handle(mux, RouteInvite, s.admin(s.createInvite))
	s.handle(mux, RouteValidateInvite, s.validateInvite)
	s.handle(mux, RouteRegister, s.register)
	s.handle(mux, RouteListUsers, s.admin(s.listUsers))
	s.handle(mux, RouteUserRole, s.admin(s.changeRole))
	s.handle(mux, RouteUserStatus, s.admin(s.changeStatus))

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the API base.
func (s *Server) URL() string {
	return s.srv.URL
}

// Client returns an http.Client wired to the fake.
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// AddUser registers an account directly and returns it with its generated id.
func (s *Server) AddUser(name, email, password, role, status string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
		Status:   status,
	}
	s.users[u.ID] = u
	return *u
}

// User returns the stored account with id.
func (s *Server) User(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// IssueInvite creates an invite without going through the admin route.
func (s *Server) IssueInvite(email, role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(email, role)
}

// ConsumeInvite marks token as spent, as a registration elsewhere would.
func (s *Server) ConsumeInvite(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.invites[token]; ok {
		inv.consumed = true
	}
}

// IssueSession returns a bearer token for userID, as a login would.
func (s *Server) IssueSession(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = userID
	return token
}

// RevokeSessions forgets every bearer token so the next authenticated request
// receives 401.
func (s *Server) RevokeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]string)
}

// BeforeHandle installs fn to run before each request. It runs outside the
// server lock.
func (s *Server) BeforeHandle(fn func(route string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeHandle = fn
}

// Calls returns how many requests route has received.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests received on any route.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// LastHeader returns the headers of the latest request on route.
func (s *Server) LastHeader(route string) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[route].Clone()
}

// Registrations returns every register body received, in order.
func (s *Server) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Registration, len(s.registrations))
	copy(out, s.registrations)
	return out
}

func (s *Server) handle(mux *http.ServeMux, route string, fn http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		s.headers[route] = r.Header.Clone()
		hook := s.beforeHandle
		s.mu.Unlock()

		if hook != nil {
			hook(route)
		}
		fn(w, r)
	})
}

func (s *Server) issueLocked(email, role string) string {
	token := uuid.NewString()
	s.invites[token] = &invite{email: email, role: role}
	return token
}

// callerLocked resolves the bearer token. mu must be held.
func (s *Server) callerLocked(r *http.Request) (*User, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, false
	}
	id, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	u, ok := s.users[id]
	return u, ok
}

func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		u, ok := s.callerLocked(r)
		isAdmin := ok && u.Role == "ADMIN"
		s.mu.Unlock()

		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		if !isAdmin {
			writeMessage(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
