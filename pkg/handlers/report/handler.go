package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/de-tools/erate-atlas/pkg/adapters"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultSearchLimit = 50

type OrganizationResolver interface {
	Search(ctx context.Context, term, stateFilter string, limit int) ([]domain.OrganizationSummary, error)
}

type HistoryRunner interface {
	Run(ctx context.Context, organization string, thresholds domain.Thresholds) (*domain.HistoryReport, error)
}

type StateRunner interface {
	Run(ctx context.Context, state, year string, thresholds domain.Thresholds) (*domain.StateReport, error)
}

type Handler struct {
	resolver OrganizationResolver
	history  HistoryRunner
	state    StateRunner
	profile  *config.Profile
}

func NewHandler(
	resolver OrganizationResolver,
	history HistoryRunner,
	state StateRunner,
	profile *config.Profile,
) *Handler {
	return &Handler{
		resolver: resolver,
		history:  history,
		state:    state,
		profile:  profile,
	}
}

func (h *Handler) SearchOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	term := r.URL.Query().Get("q")
	if term == "" {
		http.Error(w, "missing query parameter q", http.StatusBadRequest)
		return
	}
	state := r.URL.Query().Get("state")
	limit, err := intParam(r, "limit", defaultSearchLimit)
	if err != nil {
		http.Error(w, "invalid limit", http.StatusBadRequest)
		return
	}

	orgs, err := h.resolver.Search(ctx, term, state, limit)
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("organization search failed")
		http.Error(w, "organization search failed", http.StatusBadGateway)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapOrganizationSummariesDomainToApi(orgs)); err != nil {
		logger.Error().Err(err).Str("term", term).Msg("failed to encode search results")
	}
}

func (h *Handler) GetHistoryReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	org, err := url.PathUnescape(chi.URLParam(r, "organization"))
	if err != nil || org == "" {
		http.Error(w, "invalid organization", http.StatusBadRequest)
		return
	}

	thresholds := domain.Thresholds{
		School: h.profile.SchoolThreshold,
		SKU:    h.profile.SKUThreshold,
	}
	thresholds.SKU, err = floatParam(r, "sku-threshold", thresholds.SKU)
	if err != nil {
		http.Error(w, "invalid sku-threshold", http.StatusBadRequest)
		return
	}

	rep, err := h.history.Run(ctx, org, thresholds)
	if err != nil {
		logger.Error().Err(err).Str("organization", org).Msg("history run failed")
		http.Error(w, "history report failed", http.StatusBadGateway)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapHistoryReportDomainToApi(rep)); err != nil {
		logger.Error().Err(err).Str("organization", org).Msg("failed to encode history report")
	}
}

func (h *Handler) GetStateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	state := strings.ToUpper(chi.URLParam(r, "state"))
	year := chi.URLParam(r, "year")
	if len(state) != 2 {
		http.Error(w, "state must be a two-letter code", http.StatusBadRequest)
		return
	}
	if _, err := strconv.Atoi(year); err != nil {
		http.Error(w, "invalid funding year", http.StatusBadRequest)
		return
	}

	thresholds := domain.Thresholds{
		School: h.profile.SchoolThreshold,
		SKU:    h.profile.SKUThreshold,
	}
	var err error
	thresholds.School, err = floatParam(r, "school-threshold", thresholds.School)
	if err != nil {
		http.Error(w, "invalid school-threshold", http.StatusBadRequest)
		return
	}
	thresholds.SKU, err = floatParam(r, "sku-threshold", thresholds.SKU)
	if err != nil {
		http.Error(w, "invalid sku-threshold", http.StatusBadRequest)
		return
	}

	rep, err := h.state.Run(ctx, state, year, thresholds)
	if err != nil {
		logger.Error().Err(err).Str("state", state).Str("year", year).Msg("state run failed")
		http.Error(w, "state report failed", http.StatusBadGateway)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapStateReportDomainToApi(rep)); err != nil {
		logger.Error().Err(err).Str("state", state).Msg("failed to encode state report")
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
