package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"foodlink/internal/auth"
	"foodlink/internal/domain"
)

// App bundles the dependencies shared by every handler.
type App struct {
	Users     domain.UserRepository
	Donations domain.DonationRepository
	Tokens    *auth.TokenManager
	Logger    zerolog.Logger
}

func NewApp(users domain.UserRepository, donations domain.DonationRepository, tokens *auth.TokenManager, logger zerolog.Logger) *App {
	return &App{Users: users, Donations: donations, Tokens: tokens, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the standard error envelope with a message localized for the
// request.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code, msgKey string) {
	a.json(w, status, map[string]string{
		"error":   code,
		"message": localize(r, msgKey),
	})
}
