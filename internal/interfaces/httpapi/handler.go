package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cup-standings/internal/domain/match"
	"github.com/riskibarqy/cup-standings/internal/platform/logging"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

const (
	defaultLatestLimit = 10
	defaultGroup       = "A"
)

type latestMatchesRequest struct {
	Limit int `validate:"min=1,max=100"`
}

type groupRequest struct {
	Group string `validate:"required,max=16"`
}

type matchCodeRequest struct {
	MatchCode string `validate:"required,max=64"`
}

type Handler struct {
	tournamentService *usecase.TournamentService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(tournamentService *usecase.TournamentService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMatches serves /v1/matches: the newest limit matches, or every match when
// all=true. Both forms report the total number of valid matches.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("all")); raw != "" {
		all, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: all must be a boolean", usecase.ErrInvalidInput))
			return
		}
		if all {
			h.listAllMatches(ctx, w)
			return
		}
	}

	req := latestMatchesRequest{Limit: defaultLatestLimit}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		req.Limit = limit
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	page, err := h.tournamentService.ListLatestMatches(ctx, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list latest matches failed", "limit", req.Limit, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, matchPageToDTO(page))
}

func (h *Handler) listAllMatches(ctx context.Context, w http.ResponseWriter) {
	items, err := h.tournamentService.ListMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, matchPageToDTO(usecase.MatchPage{Items: items, Total: len(items)}))
}

func (h *Handler) GetMatchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDetail")
	defer span.End()

	req := matchCodeRequest{MatchCode: strings.TrimSpace(r.PathValue("matchCode"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.tournamentService.GetMatchDetail(ctx, req.MatchCode)
	if err != nil {
		h.logger.WarnContext(ctx, "get match detail failed", "match_code", req.MatchCode, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, matchDetailToDTO(detail))
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGroups")
	defer span.End()

	items, err := h.tournamentService.ListGroups(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list groups failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, groupSummariesToDTO(items))
}

func (h *Handler) ListAllStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAllStandings")
	defer span.End()

	items, err := h.tournamentService.ListAllStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list all standings failed", "error", err)
		writeError(w, err)
		return
	}

	out := make([]groupStandingsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, groupStandingsDTO{Group: item.Group, Rows: standingRowsToDTO(item.Rows)})
	}
	writeSuccess(w, http.StatusOK, out)
}

func (h *Handler) GetGroupStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupStandings")
	defer span.End()

	h.writeGroupStandings(ctx, w, r.PathValue("group"))
}

// GetStandingsByQuery serves /v1/standings?g=B and falls back to group A.
func (h *Handler) GetStandingsByQuery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandingsByQuery")
	defer span.End()

	group := r.URL.Query().Get("g")
	if strings.TrimSpace(group) == "" {
		group = defaultGroup
	}
	h.writeGroupStandings(ctx, w, group)
}

func (h *Handler) GetGroupRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGroupRounds")
	defer span.End()

	req := groupRequest{Group: match.NormalizeGroup(r.PathValue("group"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	rounds, err := h.tournamentService.GetGroupRounds(ctx, req.Group)
	if err != nil {
		h.logger.WarnContext(ctx, "get group rounds failed", "group", req.Group, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, groupRoundsDTO{Group: req.Group, Rounds: roundsToDTO(rounds)})
}

func (h *Handler) writeGroupStandings(ctx context.Context, w http.ResponseWriter, group string) {
	req := groupRequest{Group: match.NormalizeGroup(group)}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(w, err)
		return
	}

	rows, err := h.tournamentService.GetGroupStandings(ctx, req.Group)
	if err != nil {
		h.logger.WarnContext(ctx, "get group standings failed", "group", req.Group, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, groupStandingsDTO{Group: req.Group, Rows: standingRowsToDTO(rows)})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
