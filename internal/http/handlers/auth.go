package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"foodlink/internal/auth"
	"foodlink/internal/domain"
	"foodlink/internal/middleware"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

type userInfoResponse struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	DonationsMade    int    `json:"donationsMade"`
	ClaimedDonations int    `json:"claimedDonations"`
}

// Signup registers a new account. The password is stored as a bcrypt hash,
// never echoed back.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request", "fields_required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	_, err = a.Users.Create(r.Context(), &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		a.error(w, r, http.StatusBadRequest, "conflict", "email_exists")
		return
	case errors.Is(err, domain.ErrUsernameTaken):
		a.error(w, r, http.StatusBadRequest, "conflict", "username_exists")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{"message": localize(r, "signup_ok")})
}

// Login verifies credentials and issues a time-limited bearer token.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_payload")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, r, http.StatusBadRequest, "not_found", "user_not_found")
			return
		}
		a.Logger.Error().Err(err).Msg("lookup user failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		a.error(w, r, http.StatusBadRequest, "invalid_credentials", "invalid_password")
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusOK, loginResponse{
		Message:  localize(r, "login_ok"),
		Token:    token,
		Username: user.Username,
	})
}

// UserInfo returns the authenticated user's profile and counters.
func (a *App) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	user, err := a.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, r, http.StatusNotFound, "not_found", "user_not_found")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusOK, userInfoResponse{
		Username:         user.Username,
		Email:            user.Email,
		DonationsMade:    user.DonationsMade,
		ClaimedDonations: user.ClaimedDonations,
	})
}
