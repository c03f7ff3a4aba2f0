package sport

import "strings"

// Sport identifies which simulation family produced a league export.
type Sport string

const (
	Basketball Sport = "basketball"
	Football   Sport = "football"
	Hockey     Sport = "hockey"
	Baseball   Sport = "baseball"
)

// Default is used whenever an export does not reveal its sport.
const Default = Basketball

var All = []Sport{Basketball, Football, Hockey, Baseball}

func Parse(v string) (Sport, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "basketball", "bbgm", "nba":
		return Basketball, true
	case "football", "fbgm", "nfl":
		return Football, true
	case "hockey", "zgmh", "nhl":
		return Hockey, true
	case "baseball", "zgmb", "mlb":
		return Baseball, true
	default:
		return "", false
	}
}

func (s Sport) Valid() bool {
	switch s {
	case Basketball, Football, Hockey, Baseball:
		return true
	default:
		return false
	}
}

// exclusiveAwards are award labels only one sport ever emits.
var exclusiveAwards = map[string]Sport{
	"sixth man of the year":           Basketball,
	"most improved player":            Basketball,
	"all-defensive team":              Basketball,
	"first team all-defensive":        Basketball,
	"slam dunk contest winner":        Basketball,
	"three-point contest winner":      Basketball,
	"league scoring leader":           Basketball,
	"league rebounding leader":        Basketball,
	"offensive player of the year":    Football,
	"offensive rookie of the year":    Football,
	"defensive rookie of the year":    Football,
	"league passing leader":           Football,
	"league rushing leader":           Football,
	"goalie of the year":              Hockey,
	"defenseman of the year":          Hockey,
	"playoffs mvp":                    Hockey,
	"league goals leader":             Hockey,
	"pitcher of the year":             Baseball,
	"relief pitcher of the year":      Baseball,
	"gold glove":                      Baseball,
	"silver slugger":                  Baseball,
	"league home run leader":          Baseball,
}

// Detect votes on a sample of award labels. Ties and empty samples fall back
// to Default.
func Detect(labels []string) Sport {
	best, _ := Vote(labels)
	return best
}

// Vote returns the winning sport and how many labels voted for it. Zero votes
// means no label was exclusive to any sport.
func Vote(labels []string) (Sport, int) {
	votes := make(map[Sport]int, len(All))
	for _, label := range labels {
		if s, ok := exclusiveAwards[strings.ToLower(strings.TrimSpace(label))]; ok {
			votes[s]++
		}
	}

	best := Default
	bestVotes := 0
	for _, s := range All {
		if votes[s] > bestVotes {
			best = s
			bestVotes = votes[s]
		}
	}

	return best, bestVotes
}
