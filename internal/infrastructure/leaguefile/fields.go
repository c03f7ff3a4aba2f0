package leaguefile

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/league-grid/internal/domain/player"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

// rowMeta are stat row keys that describe the row rather than a counting stat.
var rowMeta = map[string]struct{}{
	"season":        {},
	"tid":           {},
	"playoffs":      {},
	"gp":            {},
	"pid":           {},
	"rid":           {},
	"yearsWithTeam": {},
	"jerseyNumber":  {},
}

func statRow(s sport.Sport, src map[string]any) player.StatRow {
	row := player.StatRow{
		Season:   getInt(src, "season"),
		TID:      getInt(src, "tid"),
		Playoffs: truthy(src["playoffs"]),
		GP:       getInt(src, "gp"),
	}

	raw := make(map[string]float64, len(src))
	for key, value := range src {
		if _, skip := rowMeta[key]; skip {
			continue
		}
		if v, ok := toFloat(value); ok {
			raw[key] = v
		}
	}
	row.Values = player.NormalizeValues(s, raw)

	return row
}

// draft reads the loosely-typed draft object. Newer exports spell the overall
// pick "overallPick", older ones "ovrPick"; "type" is free text.
func draft(src map[string]any) *player.Draft {
	out := &player.Draft{
		Type:        getString(src, "type"),
		Year:        getInt(src, "year"),
		Round:       optionalInt(src, "round"),
		Pick:        optionalInt(src, "pick"),
		OverallPick: optionalInt(src, "overallPick", "ovrPick", "overall"),
		TID:         optionalInt(src, "tid"),
		OriginalTID: optionalInt(src, "originalTid", "originalTID"),
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	v, ok := toFloat(src[key])
	if !ok {
		return 0
	}
	return int(v)
}

// optionalInt returns the first present key, keeping an explicit zero apart
// from an absent field.
func optionalInt(src map[string]any, keys ...string) *int {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			continue
		}
		out := int(v)
		return &out
	}
	return nil
}

func toFloat(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// truthy accepts the bool and 0/1 spellings exports use for flags.
func truthy(raw any) bool {
	switch typed := raw.(type) {
	case bool:
		return typed
	case string:
		v, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && v
	default:
		v, ok := toFloat(raw)
		return ok && v != 0
	}
}
