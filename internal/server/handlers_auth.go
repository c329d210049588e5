package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"campusworks/internal/types"
)

// loginHandler authenticates a user by email and password. Credentials are
// plain lookups against the store; no sessions or tokens are issued.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeErrorResponse(w, "Missing credentials", "email and password are required", http.StatusBadRequest)
		return
	}

	user, ok := s.Store.Users.FindOne(func(u types.User) bool {
		return strings.ToLower(u.Email) == email && u.Password == req.Password
	})
	if !ok {
		s.Logger.Info("Login failed", "email", email, "client_ip", r.RemoteAddr)
		writeErrorResponse(w, "Invalid credentials", "email or password is incorrect", http.StatusUnauthorized)
		return
	}

	s.Logger.Info("Login successful", "user_id", user.ID, "role", string(user.Role))
	writeJSONResponse(w, http.StatusOK, user)
}

// registerHandler creates a new student account.
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		writeErrorResponse(w, "Missing fields", "name, email and password are required", http.StatusBadRequest)
		return
	}

	role := types.Role(req.Role)
	switch role {
	case "":
		role = types.RoleStudent
	case types.RoleStudent, types.RolePro:
	default:
		writeErrorResponse(w, "Invalid role", "role must be student or pro", http.StatusBadRequest)
		return
	}

	if _, exists := s.Store.Users.FindOne(func(u types.User) bool {
		return strings.ToLower(u.Email) == email
	}); exists {
		writeErrorResponse(w, "Email taken", "an account with this email already exists", http.StatusConflict)
		return
	}

	user := types.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: req.Password,
		Name:     name,
		Role:     role,
		Avatar:   avatarFor(name),
	}
	if role == types.RoleStudent {
		user.Resume = &types.Resume{}
	}
	s.Store.Users.Insert(user.ID, user)

	s.Logger.Info("User registered", "user_id", user.ID, "role", string(user.Role))
	writeJSONResponse(w, http.StatusCreated, user)
}

// avatarFor derives a two-letter avatar tag from a display name.
func avatarFor(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "??"
	case 1:
		if len(fields[0]) >= 2 {
			return strings.ToUpper(fields[0][:2])
		}
		return strings.ToUpper(fields[0])
	default:
		return strings.ToUpper(fields[0][:1] + fields[len(fields)-1][:1])
	}
}
