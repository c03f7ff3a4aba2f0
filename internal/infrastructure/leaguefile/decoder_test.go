package leaguefile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

const basketballExport = `{
  "version": 52,
  "players": [
    {
      "pid": 7,
      "tid": 2,
      "firstName": "Lee",
      "lastName": "Stone",
      "hof": 1,
      "awards": [{"season": 2020, "type": "Most Valuable Player"}, {"season": 2021, "type": "Sixth Man of the Year"}],
      "stats": [
        {"season": 2020, "tid": 1, "playoffs": false, "gp": 40, "pts": 800, "orb": 50, "drb": 150, "tp": 30},
        {"season": 2020, "tid": 2, "gp": 20, "pts": 400, "trb": 90},
        {"season": 2020, "tid": -1, "gp": 60, "pts": 1200, "trb": 290},
        {"season": 2020, "tid": 2, "playoffs": 1, "gp": 8, "pts": 200}
      ],
      "draft": {"round": 1, "pick": 3, "ovrPick": 3, "tid": 1, "originalTid": 1, "year": 2015}
    },
    {
      "pid": 8,
      "name": "Undrafted Guard",
      "tid": 1,
      "hof": false,
      "stats": [{"season": 2019, "tid": 1, "gp": 70, "pts": "1100"}],
      "draft": {"round": 0, "pick": 0, "tid": -1, "year": 2018}
    }
  ],
  "teams": [
    {"tid": 1, "abbrev": "BOS", "region": "Boston", "name": "Hawks", "fid": 10},
    {"tid": 2, "abbrev": "SEA", "region": "Seattle", "name": "Hawks", "franchiseId": 10},
    {"tid": 3, "abbrev": "LAX", "region": "Los Angeles", "name": "Comets"}
  ]
}`

func gzipped(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(body)); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func TestDecoder_Decode_Basketball(t *testing.T) {
	ds, err := NewDecoder().Decode(context.Background(), strings.NewReader(basketballExport))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if ds.Sport != sport.Basketball {
		t.Fatalf("expected basketball, got %s", ds.Sport)
	}
	if ds.Bounds.MinSeason != 2019 || ds.Bounds.MaxSeason != 2021 {
		t.Fatalf("unexpected bounds: %+v", ds.Bounds)
	}
	if len(ds.Players) != 2 || len(ds.Teams) != 3 {
		t.Fatalf("unexpected sizes: players=%d teams=%d", len(ds.Players), len(ds.Teams))
	}

	star := ds.Players[0]
	if star.Name != "Lee Stone" || !star.HOF {
		t.Fatalf("unexpected player header: %+v", star)
	}
	if len(star.Stats) != 4 {
		t.Fatalf("expected 4 stat rows, got %d", len(star.Stats))
	}
	first := star.Stats[0]
	if first.Value(player.StatRebounds) != 200 || first.Value(player.StatThreesMade) != 30 {
		t.Fatalf("unexpected normalized values: %+v", first.Values)
	}
	if !star.Stats[2].IsAggregate() || star.Stats[2].GP != 60 {
		t.Fatalf("expected aggregate row, got %+v", star.Stats[2])
	}
	if !star.Stats[3].Playoffs || star.Stats[1].Playoffs {
		t.Fatalf("unexpected playoff flags")
	}
	if star.Draft == nil || star.Draft.OverallPick == nil || *star.Draft.OverallPick != 3 {
		t.Fatalf("expected ovrPick to populate overall pick, got %+v", star.Draft)
	}
	if star.Draft.OriginalTID == nil || *star.Draft.OriginalTID != 1 {
		t.Fatalf("expected original tid, got %+v", star.Draft)
	}

	role := ds.Players[1]
	if role.Name != "Undrafted Guard" || role.HOF {
		t.Fatalf("unexpected player: %+v", role)
	}
	if role.Stats[0].Value(player.StatPoints) != 1100 {
		t.Fatalf("expected string points to parse, got %+v", role.Stats[0].Values)
	}
	if role.Draft.Round == nil || *role.Draft.Round != 0 {
		t.Fatalf("expected explicit zero round, got %+v", role.Draft)
	}
	if role.Draft.OverallPick != nil {
		t.Fatalf("expected absent overall pick, got %d", *role.Draft.OverallPick)
	}

	if ds.Teams[0].Franchise() != 10 || ds.Teams[1].Franchise() != 10 || ds.Teams[2].Franchise() != 3 {
		t.Fatalf("unexpected franchises: %+v", ds.Teams)
	}
}

func TestDecoder_Decode_Gzip(t *testing.T) {
	ds, err := NewDecoder().Decode(context.Background(), bytes.NewReader(gzipped(t, basketballExport)))
	if err != nil {
		t.Fatalf("decode gzip: %v", err)
	}
	if len(ds.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(ds.Players))
	}
}

func TestDecoder_DecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.json")
	if err := os.WriteFile(path, gzipped(t, basketballExport), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}

	ds, err := NewDecoder().DecodeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if ds.Players[0].PID != 7 {
		t.Fatalf("unexpected first player: %+v", ds.Players[0])
	}

	if _, err := NewDecoder().DecodeFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestDecoder_SportSniffing(t *testing.T) {
	tests := []struct {
		name string
		body string
		opts []Option
		want sport.Sport
	}{
		{
			name: "explicit meta",
			body: `{"meta": {"sport": "football"}, "players": []}`,
			want: sport.Football,
		},
		{
			name: "award vote",
			body: `{"players": [{"pid": 1, "awards": [{"season": 2001, "type": "Goalie of the Year"}]}]}`,
			want: sport.Hockey,
		},
		{
			name: "stat fields",
			body: `{"players": [{"pid": 1, "stats": [{"season": 2001, "tid": 0, "gp": 10, "pssYds": 3000}]}]}`,
			want: sport.Football,
		},
		{
			name: "fallback",
			body: `{"players": [{"pid": 1, "awards": [{"season": 2001, "type": "All-Star"}]}]}`,
			want: sport.Basketball,
		},
		{
			name: "forced",
			body: `{"meta": {"sport": "football"}, "players": []}`,
			opts: []Option{WithSport(sport.Baseball)},
			want: sport.Baseball,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDecoder(tt.opts...).Decode(context.Background(), strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if ds.Sport != tt.want {
				t.Fatalf("sport = %s, want %s", ds.Sport, tt.want)
			}
		})
	}
}

func TestDecoder_HockeyComponents(t *testing.T) {
	body := `{"players": [{"pid": 1, "stats": [{"season": 2001, "tid": 0, "gp": 80, "evG": 20, "ppG": 8, "shG": 2, "evA": 25, "ppA": 10}]}]}`

	ds, err := NewDecoder(WithSport(sport.Hockey)).Decode(context.Background(), strings.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	row := ds.Players[0].Stats[0]
	if row.Value(player.StatGoals) != 30 || row.Value(player.StatHockeyAssists) != 35 || row.Value(player.StatHockeyPoints) != 65 {
		t.Fatalf("unexpected hockey values: %+v", row.Values)
	}
}

func TestDecoder_Errors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		body    string
		opts    []Option
		wantErr error
	}{
		{name: "malformed", ctx: context.Background(), body: `{"players": [`, wantErr: ErrMalformed},
		{name: "no players", ctx: context.Background(), body: `{"teams": []}`, wantErr: ErrMissingField},
		{name: "too large", ctx: context.Background(), body: basketballExport, opts: []Option{WithMaxBytes(64)}, wantErr: ErrTooLarge},
		{name: "canceled", ctx: canceled, body: basketballExport, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder(tt.opts...).Decode(tt.ctx, strings.NewReader(tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
