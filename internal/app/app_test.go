package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/league-grid/internal/config"
	"github.com/riskibarqy/league-grid/internal/usecase"
)

const smallExport = `{
  "meta": {"sport": "basketball"},
  "teams": [{"tid": 0, "abbrev": "AAA", "region": "Alpha", "name": "Ants"}],
  "players": [
    {"pid": 1, "name": "One", "tid": 0, "awards": [{"season": 2001, "type": "Most Valuable Player"}],
     "stats": [{"season": 2001, "tid": 0, "gp": 70, "pts": 1800}]},
    {"pid": 2, "name": "Two", "tid": 0, "stats": [{"season": 2001, "tid": 0, "gp": 50, "pts": 400}]}
  ]
}`

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:             ":0",
		LeagueMaxUploadBytes: 1 << 20,
		GridMinCellSize:      1,
		GridMaxAttempts:      5,
		GridWorkers:          2,
		GridCapacity:         8,
	}
}

func TestNewHTTPServer_PreloadsLeagueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.json")
	require.NoError(t, os.WriteFile(path, []byte(smallExport), 0o600))

	cfg := testConfig()
	cfg.LeagueFilePath = path

	srv, err := NewHTTPServer(cfg, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/league", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"players":2`)
}

func TestNewHTTPServer_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.HTTPAddr = ""
	_, err := NewHTTPServer(cfg, nil)
	require.Error(t, err)

	cfg = testConfig()
	cfg.LeagueFilePath = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewHTTPServer(cfg, nil)
	require.ErrorIs(t, err, os.ErrNotExist)

	cfg = testConfig()
	cfg.VocabularyOverridesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewHTTPServer(cfg, nil)
	require.Error(t, err)
}

func TestServices_LoadLeagueFile(t *testing.T) {
	services, err := NewServices(testConfig(), nil)
	require.NoError(t, err)

	_, err = services.League.Summary(context.Background())
	if !errors.Is(err, usecase.ErrNoLeagueLoaded) {
		t.Fatalf("expected ErrNoLeagueLoaded, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "league.json")
	require.NoError(t, os.WriteFile(path, []byte(smallExport), 0o600))

	summary, err := services.LoadLeagueFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Players)
	require.Equal(t, 2001, summary.Bounds.MinSeason)
}
