package leaguefile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/tidwall/gjson"

	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
	"github.com/riskibarqy/league-grid/internal/domain/team"
)

const (
	defaultMaxBytes  = 256 << 20
	sportSampleLimit = 200
)

var (
	ErrTooLarge     = crerr.New("league export exceeds size limit")
	ErrMalformed    = crerr.New("league export is not valid json")
	ErrMissingField = crerr.New("league export has no players array")
)

var gzipMagic = []byte{0x1f, 0x8b}

// sportPaths are checked in order for an explicit sport marker.
var sportPaths = []string{"meta.sport", "sport", "gameAttributes.sport"}

type Decoder struct {
	maxBytes int64
	sport    sport.Sport
}

type Option func(*Decoder)

// WithMaxBytes caps the decompressed export size.
func WithMaxBytes(n int64) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxBytes = n
		}
	}
}

// WithSport skips sport sniffing.
func WithSport(s sport.Sport) Option {
	return func(d *Decoder) {
		if s.Valid() {
			d.sport = s
		}
	}
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxBytes: defaultMaxBytes}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeFile opens path and decodes it. Gzip exports are detected by content,
// not by extension.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*league.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open league export %s", path)
	}
	defer f.Close()

	return d.Decode(ctx, f)
}

func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*league.Dataset, error) {
	raw, err := d.read(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, crerr.Wrap(err, "decode league export")
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformed
	}
	if !gjson.GetBytes(raw, "players").IsArray() {
		return nil, ErrMissingField
	}

	detected := d.sport
	if !detected.Valid() {
		detected = sniffSport(raw)
	}

	var export rawExport
	if err := sonic.Unmarshal(raw, &export); err != nil {
		return nil, crerr.Wrap(err, "decode league export")
	}
	if err := ctx.Err(); err != nil {
		return nil, crerr.Wrap(err, "decode league export")
	}

	players := make([]player.Player, 0, len(export.Players))
	for _, item := range export.Players {
		players = append(players, item.toDomain(detected))
	}
	teams := make([]team.Team, 0, len(export.Teams))
	for _, item := range export.Teams {
		teams = append(teams, item.toDomain())
	}

	return &league.Dataset{
		Sport:   detected,
		Players: players,
		Teams:   teams,
		Bounds:  league.ComputeBounds(players),
	}, nil
}

func (d *Decoder) read(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, crerr.New("league export reader is nil")
	}

	buffered := bufio.NewReader(r)
	var body io.Reader = buffered
	if head, err := buffered.Peek(len(gzipMagic)); err == nil && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, crerr.Wrap(err, "open gzip league export")
		}
		defer zr.Close()
		body = zr
	}

	raw, err := io.ReadAll(io.LimitReader(body, d.maxBytes+1))
	if err != nil {
		return nil, crerr.Wrap(err, "read league export")
	}
	if int64(len(raw)) > d.maxBytes {
		return nil, crerr.Wrapf(ErrTooLarge, "limit=%d bytes", d.maxBytes)
	}

	return raw, nil
}

// sniffSport prefers an explicit marker, then a vote over award labels and
// finally sport-specific stat fields.
func sniffSport(raw []byte) sport.Sport {
	for _, path := range sportPaths {
		if s, ok := sport.Parse(gjson.GetBytes(raw, path).String()); ok {
			return s
		}
	}

	labels := make([]string, 0, sportSampleLimit)
	gjson.GetBytes(raw, "players").ForEach(func(_, p gjson.Result) bool {
		p.Get("awards").ForEach(func(_, award gjson.Result) bool {
			labels = append(labels, award.Get("type").String())
			return len(labels) < sportSampleLimit
		})
		return len(labels) < sportSampleLimit
	})
	if detected, votes := sport.Vote(labels); votes > 0 {
		return detected
	}

	stats := gjson.GetBytes(raw, "players.0.stats.0")
	switch {
	case stats.Get("pssYds").Exists() || stats.Get("rusYds").Exists():
		return sport.Football
	case stats.Get("evG").Exists() || stats.Get("ppG").Exists():
		return sport.Hockey
	case stats.Get("hr").Exists() && stats.Get("ab").Exists():
		return sport.Baseball
	}

	return sport.Default
}

type rawExport struct {
	Version int         `json:"version"`
	Players []rawPlayer `json:"players"`
	Teams   []rawTeam   `json:"teams"`
}

type rawAward struct {
	Season int    `json:"season"`
	Type   string `json:"type"`
}

type rawPlayer struct {
	PID       int              `json:"pid"`
	TID       int              `json:"tid"`
	Name      string           `json:"name"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	HOF       any              `json:"hof"`
	Awards    []rawAward       `json:"awards"`
	Stats     []map[string]any `json:"stats"`
	Draft     map[string]any   `json:"draft"`
}

func (p rawPlayer) toDomain(s sport.Sport) player.Player {
	out := player.Player{
		PID:  p.PID,
		Name: displayName(p),
		TID:  p.TID,
		HOF:  truthy(p.HOF),
	}
	for _, award := range p.Awards {
		label := strings.TrimSpace(award.Type)
		if label == "" {
			continue
		}
		out.Awards = append(out.Awards, player.Award{Type: label, Season: award.Season})
	}
	for _, row := range p.Stats {
		out.Stats = append(out.Stats, statRow(s, row))
	}
	if p.Draft != nil {
		out.Draft = draft(p.Draft)
	}
	return out
}

func displayName(p rawPlayer) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName)); name != "" {
		return name
	}
	return fmt.Sprintf("Player %d", p.PID)
}

type rawTeam struct {
	TID         int      `json:"tid"`
	Abbrev      string   `json:"abbrev"`
	Region      string   `json:"region"`
	Name        string   `json:"name"`
	Colors      []string `json:"colors"`
	FranchiseID *int     `json:"franchiseId"`
	FID         *int     `json:"fid"`
}

func (t rawTeam) toDomain() team.Team {
	out := team.Team{
		TID:    t.TID,
		Abbrev: strings.TrimSpace(t.Abbrev),
		Region: strings.TrimSpace(t.Region),
		Name:   strings.TrimSpace(t.Name),
		Colors: t.Colors,
	}
	switch {
	case t.FranchiseID != nil:
		out.FranchiseID = t.FranchiseID
	case t.FID != nil:
		out.FranchiseID = t.FID
	}
	return out
}
