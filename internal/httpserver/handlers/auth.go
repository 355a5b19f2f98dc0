package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/deps"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/mw"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AccountID string    `json:"account_id"`
}

// Register creates an account and grants it the starter bookmarks.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		account, err := d.Auth.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmailExists) {
				writeError(w, http.StatusConflict, "email already registered")
				return
			}
			d.Logger.Error("registration failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		d.Seeder.SeedFor(r.Context(), account.ID)

		writeJSON(w, http.StatusCreated, accountResponse{
			ID:        account.ID.String(),
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		})
	}
}

// Login exchanges credentials for a bearer token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		creds, err := d.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid email or password")
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token:     creds.Token,
			ExpiresAt: creds.ExpiresAt,
			AccountID: creds.AccountID.String(),
		})
	}
}

// Logout revokes the session behind the presented token.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.Logout(r.Context(), mw.BearerToken(r)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// LogoutAll revokes every session of the calling account.
func LogoutAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Auth.LogoutAll(r.Context(), mw.BearerToken(r)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the calling account.
func Me(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		account, err := d.Auth.Account(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		writeJSON(w, http.StatusOK, accountResponse{
			ID:        account.ID.String(),
			Email:     account.Email,
			CreatedAt: account.CreatedAt,
		})
	}
}
