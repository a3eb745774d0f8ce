package content

import (
	"sort"
	"strings"
)

// KeywordCategories groups article keywords. Each slice is de-duplicated and
// keeps the first spelling seen.
type KeywordCategories struct {
	Sports  []string
	Leagues []string
	Other   []string
}

var sportKeywords = map[string]string{
	"football":          "football",
	"soccer":            "football",
	"basketball":        "basketball",
	"baseball":          "baseball",
	"hockey":            "hockey",
	"ice hockey":        "hockey",
	"tennis":            "tennis",
	"golf":              "golf",
	"american football": "american_football",
	"rugby":             "rugby",
	"cricket":           "cricket",
}

var leagueNames = map[string]string{
	"premier_league":   "Premier League",
	"la_liga":          "La Liga",
	"serie_a":          "Serie A",
	"bundesliga":       "Bundesliga",
	"ligue_1":          "Ligue 1",
	"champions_league": "UEFA Champions League",
	"europa_league":    "UEFA Europa League",
	"world_cup":        "FIFA World Cup",
	"nba":              "NBA",
	"nfl":              "NFL",
	"mlb":              "MLB",
	"nhl":              "NHL",
	"mls":              "MLS",
}

// footballLeagueIDs maps league keys to API-Football league ids.
var footballLeagueIDs = map[string]int{
	"premier_league":   39,
	"la_liga":          140,
	"serie_a":          135,
	"bundesliga":       78,
	"ligue_1":          61,
	"champions_league": 2,
	"europa_league":    3,
	"world_cup":        1,
}

var leagueLookup = buildLeagueLookup()

func buildLeagueLookup() map[string]string {
	lookup := make(map[string]string, len(leagueNames)*2)
	for key, name := range leagueNames {
		lookup[key] = key
		lookup[strings.ToLower(name)] = key
		lookup[strings.ReplaceAll(key, "_", " ")] = key
	}
	return lookup
}

// LeagueDisplayName returns the human-readable league name. Unknown keys are
// title-cased with underscores replaced by spaces.
func LeagueDisplayName(key string) string {
	if name, ok := leagueNames[strings.ToLower(key)]; ok {
		return name
	}
	return CleanName(strings.ReplaceAll(key, "_", " "))
}

// CategorizeKeywords splits keywords into sports, leagues and everything else.
// Empty entries are dropped.
func CategorizeKeywords(keywords []string) KeywordCategories {
	var cats KeywordCategories
	seen := make(map[string]struct{}, len(keywords))

	for _, kw := range keywords {
		trimmed := strings.TrimSpace(kw)
		norm := strings.ToLower(trimmed)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}

		switch {
		case isSport(norm):
			cats.Sports = append(cats.Sports, trimmed)
		case isLeague(norm):
			cats.Leagues = append(cats.Leagues, trimmed)
		default:
			cats.Other = append(cats.Other, trimmed)
		}
	}

	return cats
}

// DetectSport returns the canonical sport for the first keyword that names one.
func DetectSport(keywords []string) (string, bool) {
	for _, kw := range keywords {
		if sport, ok := sportKeywords[strings.ToLower(strings.TrimSpace(kw))]; ok {
			return sport, true
		}
	}
	return "", false
}

func isSport(norm string) bool {
	_, ok := sportKeywords[norm]
	return ok
}

func isLeague(norm string) bool {
	_, ok := leagueLookup[norm]
	return ok
}

// League describes a supported league. FootballID is the API-Football
// league id, zero for leagues that provider does not cover.
type League struct {
	Key        string
	Name       string
	FootballID int
}

// Leagues lists the supported leagues ordered by key.
func Leagues() []League {
	keys := make([]string, 0, len(leagueNames))
	for k := range leagueNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	leagues := make([]League, 0, len(keys))
	for _, k := range keys {
		leagues = append(leagues, League{Key: k, Name: leagueNames[k], FootballID: footballLeagueIDs[k]})
	}
	return leagues
}
