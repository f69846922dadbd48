package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"foodlink/internal/domain"
	"foodlink/internal/middleware"
)

type donationDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FoodItem    string    `json:"foodItem"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	DonatedBy   string    `json:"donatedBy"`
	Claimed     bool      `json:"claimed"`
	ClaimedBy   *string   `json:"claimedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toDonationDTO(d domain.Donation) donationDTO {
	return donationDTO{
		ID:          d.ID,
		Name:        d.Name,
		FoodItem:    d.FoodItem,
		Quantity:    d.Quantity,
		Location:    d.Location,
		PhoneNumber: d.PhoneNumber,
		Address:     d.Address,
		DonatedBy:   d.DonatedBy,
		Claimed:     d.Claimed,
		ClaimedBy:   d.ClaimedBy,
		CreatedAt:   d.CreatedAt,
	}
}

func toDonationDTOs(items []domain.Donation) []donationDTO {
	out := make([]donationDTO, 0, len(items))
	for _, d := range items {
		out = append(out, toDonationDTO(d))
	}
	return out
}

type donateRequest struct {
	Name        string `json:"name"`
	FoodItem    string `json:"foodItem"`
	Quantity    any    `json:"quantity"`
	Location    string `json:"location"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// parseQuantity accepts a JSON number or a numeric string, rejecting
// non-integral values. The original clients submit form values as strings.
func parseQuantity(v any) (int, bool) {
	switch q := v.(type) {
	case float64:
		if q != math.Trunc(q) {
			return 0, false
		}
		return int(q), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// DonationsCreate stores a new donation owned by the authenticated user and
// bumps their donationsMade counter.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_payload")
		return
	}
	if req.Name == "" || req.FoodItem == "" || req.Quantity == nil ||
		req.Location == "" || req.PhoneNumber == "" || req.Address == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request", "fields_required")
		return
	}
	quantity, ok := parseQuantity(req.Quantity)
	if !ok || quantity < 0 {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_quantity")
		return
	}

	created, err := a.Donations.Create(r.Context(), &domain.Donation{
		Name:        req.Name,
		FoodItem:    req.FoodItem,
		Quantity:    quantity,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		DonatedBy:   userID,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("create donation failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"message":  localize(r, "donation_saved"),
		"donation": toDonationDTO(*created),
	})
}

// DonationsList returns every donation.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Donations.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donations failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}
	a.json(w, http.StatusOK, toDonationDTOs(items))
}

// DonationsByDonor returns a donor's donation history.
func (a *App) DonationsByDonor(w http.ResponseWriter, r *http.Request) {
	donorName := chi.URLParam(r, "donorName")
	items, err := a.Donations.ListByDonor(r.Context(), donorName)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list donor donations failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}
	if len(items) == 0 {
		a.error(w, r, http.StatusNotFound, "not_found", "no_donor_donations")
		return
	}
	a.json(w, http.StatusOK, toDonationDTOs(items))
}

type donationUpdateRequest struct {
	Name        *string `json:"name"`
	FoodItem    *string `json:"foodItem"`
	Quantity    any     `json:"quantity"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// DonationsUpdate overwrites the known fields present in the payload; unknown
// keys are ignored. Claimed donations are immutable.
func (a *App) DonationsUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "donationId")
	if !validDonationID(id) {
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	}

	var req donationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_payload")
		return
	}

	patch := domain.DonationPatch{
		Name:        req.Name,
		FoodItem:    req.FoodItem,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if req.Quantity != nil {
		quantity, ok := parseQuantity(req.Quantity)
		if !ok || quantity < 0 {
			a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_quantity")
			return
		}
		patch.Quantity = &quantity
	}

	updated, err := a.Donations.Update(r.Context(), id, patch)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	case errors.Is(err, domain.ErrAlreadyClaimed):
		a.error(w, r, http.StatusBadRequest, "conflict", "cannot_update_claimed")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("update donation failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"message":  localize(r, "donation_updated"),
		"donation": toDonationDTO(*updated),
	})
}

// DonationsDelete removes an unclaimed donation permanently.
func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "donationId")
	if !validDonationID(id) {
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	}

	err := a.Donations.Delete(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	case errors.Is(err, domain.ErrAlreadyClaimed):
		a.error(w, r, http.StatusBadRequest, "conflict", "cannot_delete_claimed")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("delete donation failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"message": localize(r, "donation_deleted")})
}

// DonationsFilter returns unclaimed donations matching the optional location
// and foodItem predicates. An empty result is a valid empty array.
func (a *App) DonationsFilter(w http.ResponseWriter, r *http.Request) {
	filter := domain.DonationFilter{
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
		FoodItem: strings.TrimSpace(r.URL.Query().Get("foodItem")),
	}
	items, err := a.Donations.Filter(r.Context(), filter)
	if err != nil {
		a.Logger.Error().Err(err).Msg("filter donations failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}
	a.json(w, http.StatusOK, toDonationDTOs(items))
}

// MatchingDonations returns unclaimed donations for a location. When the
// caller does not name one, the detected country of the request is used as a
// best-effort fallback.
func (a *App) MatchingDonations(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.URL.Query().Get("location"))
	if location == "" {
		location = middleware.CountryFromContext(r.Context())
	}
	if location == "" {
		a.error(w, r, http.StatusNotFound, "not_found", "no_matching")
		return
	}

	items, err := a.Donations.Filter(r.Context(), domain.DonationFilter{Location: location})
	if err != nil {
		a.Logger.Error().Err(err).Msg("match donations failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}
	if len(items) == 0 {
		a.error(w, r, http.StatusNotFound, "not_found", "no_matching")
		return
	}
	a.json(w, http.StatusOK, toDonationDTOs(items))
}

type claimRequest struct {
	DonationID string `json:"donationId"`
}

// DonationsClaim reserves a donation for the authenticated user. The
// transition is one-way; a second claim fails with a conflict.
func (a *App) DonationsClaim(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, r, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, r, http.StatusBadRequest, "bad_request", "invalid_payload")
		return
	}
	if strings.TrimSpace(req.DonationID) == "" {
		a.error(w, r, http.StatusBadRequest, "bad_request", "donation_id_required")
		return
	}
	if !validDonationID(req.DonationID) {
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	}

	err := a.Donations.Claim(r.Context(), req.DonationID, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found", "donation_not_found")
		return
	case errors.Is(err, domain.ErrAlreadyClaimed):
		a.error(w, r, http.StatusBadRequest, "conflict", "donation_claimed")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("claim donation failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"message": localize(r, "donation_claimed_ok")})
}

// validDonationID rejects ids that can never match a stored record before
// they reach the database.
func validDonationID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
