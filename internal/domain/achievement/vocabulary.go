package achievement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/league-grid/internal/domain/league"
	"github.com/riskibarqy/league-grid/internal/domain/sport"
)

// Overrides adds extra synonyms on top of a definition table, keyed by sport
// then canonical id.
type Overrides map[sport.Sport]map[ID][]string

// Vocabulary resolves raw award labels to canonical ids. It is immutable after
// construction and safe for concurrent use.
type Vocabulary struct {
	defs    map[ID]Definition
	order   []ID
	bySport map[sport.Sport]map[string]ID
}

var builtin = MustNewVocabulary(Catalog, nil)

// Builtin returns the vocabulary built from Catalog at package init.
func Builtin() *Vocabulary {
	return builtin
}

func MustNewVocabulary(defs []Definition, extra Overrides) *Vocabulary {
	v, err := NewVocabulary(defs, extra)
	if err != nil {
		panic(err)
	}
	return v
}

// NewVocabulary validates defs and builds the per-sport reverse lookup. A
// synonym may appear once per sport.
func NewVocabulary(defs []Definition, extra Overrides) (*Vocabulary, error) {
	v := &Vocabulary{
		defs:    make(map[ID]Definition, len(defs)),
		order:   make([]ID, 0, len(defs)),
		bySport: make(map[sport.Sport]map[string]ID, len(sport.All)),
	}
	for _, s := range sport.All {
		v.bySport[s] = make(map[string]ID)
	}

	for _, def := range defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
		if _, exists := v.defs[def.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidDefinition, def.ID)
		}
		v.defs[def.ID] = def
		v.order = append(v.order, def.ID)

		for _, s := range def.Sports {
			for _, synonym := range def.Synonyms {
				if err := v.register(s, synonym, def.ID); err != nil {
					return nil, err
				}
			}
		}
	}

	for s, byID := range extra {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: unknown sport %q in overrides", ErrInvalidDefinition, s)
		}
		for id, synonyms := range byID {
			def, ok := v.defs[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAchievement, id)
			}
			if !def.AppliesTo(s) {
				return nil, fmt.Errorf("%w: %s does not apply to %s", ErrInvalidDefinition, id, s)
			}
			for _, synonym := range synonyms {
				if err := v.register(s, synonym, id); err != nil {
					return nil, err
				}
			}
		}
	}

	return v, nil
}

func validateDefinition(def Definition) error {
	if !def.ID.Valid() {
		return fmt.Errorf("%w: id %q must match [A-Z0-9_]+", ErrInvalidDefinition, def.ID)
	}
	if strings.TrimSpace(def.Label) == "" {
		return fmt.Errorf("%w: %s has no label", ErrInvalidDefinition, def.ID)
	}
	if def.Rule == nil {
		return fmt.Errorf("%w: %s has no rule", ErrInvalidDefinition, def.ID)
	}
	if len(def.Sports) == 0 {
		return fmt.Errorf("%w: %s applies to no sport", ErrInvalidDefinition, def.ID)
	}
	switch def.Category {
	case CategoryAward, CategoryLeader, CategoryCareer, CategoryDraft, CategoryMisc:
	default:
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidDefinition, def.ID, def.Category)
	}
	if _, isAward := def.Rule.(AwardRule); isAward != def.SeasonAligned() {
		return fmt.Errorf("%w: %s category %s does not fit its rule", ErrInvalidDefinition, def.ID, def.Category)
	}
	return nil
}

func (v *Vocabulary) register(s sport.Sport, synonym string, id ID) error {
	key := normalizeLabel(synonym)
	if key == "" {
		return nil
	}
	table := v.bySport[s]
	if existing, ok := table[key]; ok && existing != id {
		return fmt.Errorf("%w: %q maps to both %s and %s in %s", ErrDuplicateSynonym, synonym, existing, id, s)
	}
	table[key] = id
	return nil
}

func normalizeLabel(v string) string {
	return strings.ToLower(strings.Join(strings.Fields(v), " "))
}

// Resolve maps a raw award label to its canonical id within one sport.
func (v *Vocabulary) Resolve(s sport.Sport, raw string) (ID, bool) {
	table, ok := v.bySport[s]
	if !ok {
		table = v.bySport[sport.Default]
	}
	id, ok := table[normalizeLabel(raw)]
	return id, ok
}

// Lookup returns the definition for id, including generated decade ids.
func (v *Vocabulary) Lookup(id ID) (Definition, bool) {
	if def, ok := v.defs[id]; ok {
		return def, true
	}
	if start, ok := ParseDecadeID(id); ok {
		return decadeDefinition(start), true
	}
	return Definition{}, false
}

// Definitions lists the achievements available in one league: static entries
// for the sport followed by one decade entry per decade in bounds.
func (v *Vocabulary) Definitions(s sport.Sport, bounds league.Bounds) []Definition {
	out := make([]Definition, 0, len(v.order)+8)
	for _, id := range v.order {
		def := v.defs[id]
		if def.AppliesTo(s) {
			out = append(out, def)
		}
	}
	return append(out, DecadeDefinitions(bounds)...)
}

func (v *Vocabulary) IsCareerAchievement(id ID) bool {
	def, ok := v.Lookup(id)
	return ok && !def.SeasonAligned()
}

// ResolveCanonicalID resolves a raw label against the builtin vocabulary.
func ResolveCanonicalID(s sport.Sport, raw string) (ID, bool) {
	return builtin.Resolve(s, raw)
}

// IsCareerAchievement reports whether id is judged over a whole career rather
// than a team-season. Unknown ids are not career achievements.
func IsCareerAchievement(id ID) bool {
	return builtin.IsCareerAchievement(id)
}

const decadePrefix = "PLAYED_"

func DecadeID(start int) ID {
	return ID(decadePrefix + strconv.Itoa(start) + "S")
}

// ParseDecadeID accepts ids of the form PLAYED_1990S.
func ParseDecadeID(id ID) (int, bool) {
	raw := string(id)
	if !strings.HasPrefix(raw, decadePrefix) || !strings.HasSuffix(raw, "S") {
		return 0, false
	}
	start, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(raw, decadePrefix), "S"))
	if err != nil || start <= 0 || start%10 != 0 {
		return 0, false
	}
	return start, true
}

func decadeDefinition(start int) Definition {
	return Definition{
		ID:       DecadeID(start),
		Label:    fmt.Sprintf("Played in the %ds", start),
		Category: CategoryMisc,
		Sports:   everySport,
		Rule:     DecadeRule{Start: start},
	}
}

// DecadeDefinitions returns one decade achievement per decade touched by
// bounds, oldest first. Invalid bounds yield none.
func DecadeDefinitions(bounds league.Bounds) []Definition {
	if !bounds.Valid() {
		return nil
	}
	out := make([]Definition, 0, 8)
	for start := bounds.MinSeason - bounds.MinSeason%10; start <= bounds.MaxSeason; start += 10 {
		out = append(out, decadeDefinition(start))
	}
	return out
}
