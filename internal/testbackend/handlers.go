package testbackend

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) userPayloadLocked(u *User) map[string]string {
	out := map[string]string{
		"name":   u.Name,
		"email":  u.Email,
		"role":   u.Role,
		"status": u.Status,
	}
	if s.LegacyIDs {
		out["_id"] = u.ID
	} else {
		out["id"] = u.ID
	}
	return out
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if !strings.EqualFold(u.Email, req.Email) || u.Password != req.Password {
			continue
		}
		if u.Status != "ACTIVE" {
			writeMessage(w, http.StatusForbidden, "Account is inactive")
			return
		}
		token := uuid.NewString()
		s.sessions[token] = u.ID
		writeJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user":  s.userPayloadLocked(u),
		})
		return
	}
	writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
	}
	token := s.issueLocked(req.Email, req.Role)
	writeJSON(w, http.StatusCreated, map[string]string{
		"inviteLink": "/register?token=" + token,
	})
}

func (s *Server) validateInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invites[req.Token]
	if !ok || inv.consumed {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired invite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"isValid": true,
		"email":   inv.email,
		"role":    inv.role,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req Registration
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.registrations = append(s.registrations, req)

	inv, ok := s.invites[req.Token]
	if !ok || inv.consumed {
		writeMessage(w, http.StatusBadRequest, "Invalid or expired invite")
		return
	}
	if strings.TrimSpace(req.Name) == "" || len(req.Password) < 6 {
		writeMessage(w, http.StatusBadRequest, "Name and a password of at least 6 characters are required")
		return
	}

	inv.consumed = true
	u := &User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    inv.email,
		Password: req.Password,
		Role:     inv.role,
		Status:   "ACTIVE",
	}
	s.users[u.ID] = u
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]string, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, s.userPayloadLocked(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) changeRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if !decode(w, r, &req) {
		return
	}
	switch req.Role {
	case "ADMIN", "MANAGER", "STAFF":
	default:
		writeMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}
	s.updateUser(w, r.PathValue("id"), func(u *User) { u.Role = req.Role })
}

func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Status != "ACTIVE" && req.Status != "INACTIVE" {
		writeMessage(w, http.StatusBadRequest, "Invalid status")
		return
	}
	s.updateUser(w, r.PathValue("id"), func(u *User) { u.Status = req.Status })
}

func (s *Server) updateUser(w http.ResponseWriter, id string, apply func(*User)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	apply(u)
	writeJSON(w, http.StatusOK, s.userPayloadLocked(u))
}
