package server

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-access-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// CreateUserHandler registers a new account. The initial secret is generated
// server side and delivered through the notifier, never returned in the
// response.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if user.Email == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}

		created, err := s.security.CreateAccount(r.Context(), &user)
		if err != nil {
			log.Error().Err(err).Msg("user creation failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset := queryInt(r, "offset", 0)
		limit := queryInt(r, "limit", 50)

		list, err := s.userRepo.List(r.Context(), offset, limit)
		if err != nil {
			log.Error().Err(err).Msg("user listing failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		sanitized := make([]*users.User, 0, len(list))
		for _, u := range list {
			sanitized = append(sanitized, u.Sanitized())
		}
		writeJSON(w, http.StatusOK, sanitized)
	}
}

// ExportUsersHandler streams the full user list as CSV. Export is its own
// action: a role may be allowed to browse users without being allowed to
// bulk-extract them.
func (s *Server) ExportUsersHandler() http.HandlerFunc {
	const pageSize = 500

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "role_id", "email", "first_name", "middle_name", "last_name", "second_last_name", "phone"})

		for offset := 0; ; offset += pageSize {
			page, err := s.userRepo.List(r.Context(), offset, pageSize)
			if err != nil {
				log.Error().Err(err).Msg("user export failed")
				return
			}
			for _, u := range page {
				_ = cw.Write([]string{u.ID, u.RoleID, u.Email, u.FirstName, u.MiddleName, u.LastName, u.SecondLastName, u.Phone})
			}
			if len(page) < pageSize {
				break
			}
		}
		cw.Flush()
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.userRepo.GetByID(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, users.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
			return
		case err != nil:
			log.Error().Err(err).Msg("user lookup failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, user.Sanitized())
	}
}

// UpdateUserHandler replaces the mutable profile fields of a user. The
// secret digest is carried over from the stored record so an update can
// never clear or overwrite a credential.
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		existing, err := s.userRepo.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, users.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
			return
		case err != nil:
			log.Error().Err(err).Msg("user lookup failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		var user users.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		user.ID = id
		user.SecretHash = existing.SecretHash

		if err := s.userRepo.Update(r.Context(), &user); err != nil {
			log.Error().Err(err).Msg("user update failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, user.Sanitized())
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.userRepo.Delete(r.Context(), r.PathValue("id"))
		switch {
		case errors.Is(err, users.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
			return
		case err != nil:
			log.Error().Err(err).Msg("user deletion failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
