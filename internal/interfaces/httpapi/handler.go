package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/usecase"
)

const (
	defaultAnswerLimit = 25
	defaultSearchLimit = 20
	maxListLimit       = 200
)

type Handler struct {
	leagueService  *usecase.LeagueService
	gridService    *usecase.GridService
	playerService  *usecase.PlayerService
	logger         *logging.Logger
	validator      *validator.Validate
	maxUploadBytes int64
}

func NewHandler(
	leagueService *usecase.LeagueService,
	gridService *usecase.GridService,
	playerService *usecase.PlayerService,
	maxUploadBytes int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:  leagueService,
		gridService:    gridService,
		playerService:  playerService,
		logger:         logger,
		validator:      validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// LoadLeague replaces the current league with the export in the request body.
// Plain and gzip-compressed JSON are both accepted.
func (h *Handler) LoadLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoadLeague")
	defer span.End()

	body := r.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	defer body.Close()

	summary, err := h.leagueService.Load(ctx, body)
	if err != nil {
		h.logger.WarnContext(ctx, "load league failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueSummaryToDTO(ctx, summary))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	summary, err := h.leagueService.Summary(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSummaryToDTO(ctx, summary))
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAchievements")
	defer span.End()

	items, err := h.leagueService.Achievements(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list achievements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]achievementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, achievementToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetIntersection answers ?a=team:5&b=ach:MVP[&season=2020][&countOnly=true].
func (h *Handler) GetIntersection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetIntersection")
	defer span.End()

	query := r.URL.Query()
	req := intersectionRequest{
		A:         strings.TrimSpace(query.Get("a")),
		B:         strings.TrimSpace(query.Get("b")),
		Season:    strings.TrimSpace(query.Get("season")),
		CountOnly: strings.TrimSpace(query.Get("countOnly")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	a, err := grid.ParseConstraint(req.A)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: a: %v", usecase.ErrInvalidInput, err))
		return
	}
	b, err := grid.ParseConstraint(req.B)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: b: %v", usecase.ErrInvalidInput, err))
		return
	}
	season, err := parseOptionalInt(req.Season, 0)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: season: %v", usecase.ErrInvalidInput, err))
		return
	}
	countOnly := false
	if req.CountOnly != "" {
		countOnly, _ = strconv.ParseBool(req.CountOnly)
	}

	result, err := h.leagueService.Intersect(ctx, usecase.IntersectQuery{
		A:         a,
		B:         b,
		Season:    season,
		WantCount: countOnly,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "intersection failed", "a", req.A, "b", req.B, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, intersectionDTO{
		Key:     result.Key,
		Count:   result.Count,
		Members: result.Members,
	})
}

func (h *Handler) CreateGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGrid")
	defer span.End()

	var req createGridRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	item, err := h.gridService.Generate(ctx, usecase.GenerateGridInput{Seed: req.Seed})
	if err != nil {
		h.logger.WarnContext(ctx, "generate grid failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gridToDTO(ctx, item))
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGrid")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	item, err := h.gridService.Get(ctx, gridID)
	if err != nil {
		h.logger.WarnContext(ctx, "get grid failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gridToDTO(ctx, item))
}

func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitGuess")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	var req guessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.gridService.ValidateGuess(ctx, usecase.GuessInput{
		GridID:   gridID,
		Row:      *req.Row,
		Col:      *req.Col,
		PlayerID: *req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "validate guess failed", "grid_id", gridID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, guessResultToDTO(ctx, result))
}

func (h *Handler) ListCellAnswers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCellAnswers")
	defer span.End()

	gridID := strings.TrimSpace(r.PathValue("gridID"))
	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: row must be a number", usecase.ErrInvalidInput))
		return
	}
	col, err := strconv.Atoi(r.PathValue("col"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: col must be a number", usecase.ErrInvalidInput))
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"), defaultAnswerLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.gridService.CellAnswers(ctx, gridID, row, col, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list cell answers failed", "grid_id", gridID, "row", row, "col", col, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerRefsToDTO(ctx, items))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	pid, err := strconv.Atoi(strings.TrimSpace(r.PathValue("pid")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: pid must be a number", usecase.ErrInvalidInput))
		return
	}

	profile, err := h.playerService.Profile(ctx, pid)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "pid", pid, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerProfileToDTO(ctx, profile))
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	limit, err := parseLimit(r.URL.Query().Get("limit"), defaultSearchLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.playerService.Search(ctx, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerRefsToDTO(ctx, items))
}

func decodeJSON(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseOptionalInt(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func parseLimit(raw string, fallback int) (int, error) {
	limit, err := parseOptionalInt(raw, fallback)
	if err != nil || limit < 1 || limit > maxListLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxListLimit)
	}
	return limit, nil
}
