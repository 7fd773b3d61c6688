package api

import (
	"net/http"

	"github.com/mockinterview/interviewer/internal/domain/category"
)

// ── Request / Response types ────────────────────────────────────────────────

type DomainsResponse struct {
	Domains []string `json:"domains" example:"Data Analysis,Finance,Operations"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listDomains lists the interview domains.
// @Summary      List domains
// @Description  Returns the domains an interview can be started in.
// @Tags         Domains
// @Produce      json
// @Success      200  {object}  DomainsResponse
// @Router       /domains [get]
func (h *Handler) listDomains(w http.ResponseWriter, r *http.Request) {
	all := category.All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.String()
	}
	respondJSON(w, http.StatusOK, DomainsResponse{Domains: names})
}
