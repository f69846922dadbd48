package handlers

import "net/http"

type statsResponse struct {
	TotalDonations   int64 `json:"totalDonations"`
	ClaimedDonations int64 `json:"claimedDonations"`
}

// StatsSummary recomputes donation totals from the store on every call.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Donations.Stats(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("load stats failed")
		a.error(w, r, http.StatusInternalServerError, "internal", "internal")
		return
	}
	a.json(w, http.StatusOK, statsResponse{
		TotalDonations:   stats.Total,
		ClaimedDonations: stats.Claimed,
	})
}
