// Package vocabfile reads extra award-label synonyms from YAML:
//
//	hockey:
//	  HK_MVP: ["Hart Trophy"]
//	basketball:
//	  MVP: ["Maurice Podoloff Trophy"]
package vocabfile

import (
	"bytes"
	"io"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/league-grid/internal/domain/achievement"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

var ErrUnknownSport = crerr.New("unknown sport in vocabulary overrides")

// Load reads path. An empty path yields no overrides.
func Load(path string) (achievement.Overrides, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read vocabulary overrides %s", path)
	}

	return Parse(bytes.NewReader(raw))
}

func Parse(r io.Reader) (achievement.Overrides, error) {
	var doc map[string]map[string][]string
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if crerr.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, crerr.Wrap(err, "decode vocabulary overrides")
	}

	out := make(achievement.Overrides, len(doc))
	for rawSport, entries := range doc {
		s, ok := sport.Parse(rawSport)
		if !ok {
			return nil, crerr.Wrapf(ErrUnknownSport, "sport=%q", rawSport)
		}
		if out[s] == nil {
			out[s] = make(map[achievement.ID][]string, len(entries))
		}
		for rawID, synonyms := range entries {
			id := achievement.ID(strings.ToUpper(strings.TrimSpace(rawID)))
			for _, synonym := range synonyms {
				if synonym = strings.TrimSpace(synonym); synonym != "" {
					out[s][id] = append(out[s][id], synonym)
				}
			}
		}
	}

	return out, nil
}
