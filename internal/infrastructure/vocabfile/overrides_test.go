package vocabfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

func TestParse(t *testing.T) {
	doc := `
hockey:
  hk_mvp: ["Hart Trophy", "  "]
NBA:
  MVP:
    - Maurice Podoloff Trophy
`
	got, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(got[sport.Hockey]["HK_MVP"]) != 1 || got[sport.Hockey]["HK_MVP"][0] != "Hart Trophy" {
		t.Fatalf("unexpected hockey overrides: %+v", got[sport.Hockey])
	}
	if got[sport.Basketball]["MVP"][0] != "Maurice Podoloff Trophy" {
		t.Fatalf("unexpected basketball overrides: %+v", got[sport.Basketball])
	}

	vocab, err := achievement.NewVocabulary(achievement.Catalog, got)
	if err != nil {
		t.Fatalf("build vocabulary: %v", err)
	}
	if id, ok := vocab.Resolve(sport.Hockey, "hart trophy"); !ok || id != "HK_MVP" {
		t.Fatalf("expected override to resolve, got %q ok=%v", id, ok)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(strings.NewReader("curling:\n  MVP: [x]\n")); !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("expected ErrUnknownSport, got %v", err)
	}
	if _, err := Parse(strings.NewReader("basketball: [1, 2")); err == nil {
		t.Fatalf("expected yaml error")
	}
	got, err := Parse(strings.NewReader(""))
	if err != nil || got != nil {
		t.Fatalf("expected empty document to yield nothing, got %v err=%v", got, err)
	}
}

func TestLoad(t *testing.T) {
	if got, err := Load(""); err != nil || got != nil {
		t.Fatalf("expected empty path to yield nothing, got %v err=%v", got, err)
	}

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("football:\n  FB_MVP: [\"Gridiron MVP\"]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[sport.Football]["FB_MVP"][0] != "Gridiron MVP" {
		t.Fatalf("unexpected overrides: %+v", got)
	}
}
