package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/riskibarqy/league-grid/internal/config"
	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/infrastructure/leaguefile"
	"github.com/riskibarqy/league-grid/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-grid/internal/infrastructure/vocabfile"
	"github.com/riskibarqy/league-grid/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/usecase"
)

// Services is the wired usecase layer shared by the HTTP server and gridctl.
type Services struct {
	League *usecase.LeagueService
	Grid   *usecase.GridService
	Player *usecase.PlayerService
	Engine *usecase.IntersectionService
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	overrides, err := vocabfile.Load(cfg.VocabularyOverridesPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary overrides: %w", err)
	}
	vocab, err := achievement.NewVocabulary(achievement.Catalog, overrides)
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}

	leagueRepo := memory.NewLeagueRepository(nil)
	gridRepo := memory.NewGridRepository(cfg.GridCapacity)

	engine := usecase.NewIntersectionService(vocab, logger)
	decoder := leaguefile.NewDecoder(leaguefile.WithMaxBytes(cfg.LeagueMaxUploadBytes))

	return &Services{
		League: usecase.NewLeagueService(leagueRepo, decoder, engine, nil, logger),
		Grid: usecase.NewGridService(leagueRepo, gridRepo, engine, nil, usecase.GridConfig{
			MinCellSize: cfg.GridMinCellSize,
			MaxAttempts: cfg.GridMaxAttempts,
			Workers:     cfg.GridWorkers,
		}, logger),
		Player: usecase.NewPlayerService(leagueRepo, engine),
		Engine: engine,
	}, nil
}

// LoadLeagueFile makes the export at path the current league.
func (s *Services) LoadLeagueFile(ctx context.Context, path string) (usecase.LeagueSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return usecase.LeagueSummary{}, fmt.Errorf("open league file: %w", err)
	}
	defer f.Close()

	return s.League.Load(ctx, f)
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	services, err := NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(cfg.LeagueFilePath); path != "" {
		summary, err := services.LoadLeagueFile(context.Background(), path)
		if err != nil {
			return nil, fmt.Errorf("preload league: %w", err)
		}
		logger.Info("league preloaded",
			"path", path,
			"dataset_id", summary.DatasetID,
			"players", summary.Players,
		)
	}

	handler := httpapi.NewHandler(services.League, services.Grid, services.Player, cfg.LeagueMaxUploadBytes, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.MetricsEnabled)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
