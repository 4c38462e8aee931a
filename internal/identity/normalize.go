// Package identity resolves players across fantasy platforms. Each platform
// formats names, positions, and teams differently; the normalizer folds them
// into comparable forms and the generator hashes the normalized triple into a
// stable canonical ID. The resolver maps platform-specific IDs to canonical
// IDs with get-or-create semantics against the player store.
package identity

import "strings"

// Positions the fantasy starter set recognizes. Anything else normalizes to
// PositionUnknown.
const (
	PositionQB      = "QB"
	PositionRB      = "RB"
	PositionWR      = "WR"
	PositionTE      = "TE"
	PositionK       = "K"
	PositionDEF     = "DEF"
	PositionUnknown = "UNKNOWN"
)

// TeamUnknown is the canonical code for an unrecognized or missing team.
const TeamUnknown = "UNKNOWN"

// StarterPositions is the skill-position set used to derive Player.IsStarter.
var StarterPositions = map[string]bool{
	PositionQB:  true,
	PositionRB:  true,
	PositionWR:  true,
	PositionTE:  true,
	PositionK:   true,
	PositionDEF: true,
}

// positionAliases maps long-form and platform-specific position tokens onto
// the closed fantasy set. Keys are uppercase.
var positionAliases = map[string]string{
	"QB":             PositionQB,
	"QUARTERBACK":    PositionQB,
	"RB":             PositionRB,
	"HB":             PositionRB,
	"RUNNING BACK":   PositionRB,
	"WR":             PositionWR,
	"WIDE RECEIVER":  PositionWR,
	"TE":             PositionTE,
	"TIGHT END":      PositionTE,
	"K":              PositionK,
	"PK":             PositionK,
	"KICKER":         PositionK,
	"PLACE KICKER":   PositionK,
	"DEF":            PositionDEF,
	"D/ST":           PositionDEF,
	"DST":            PositionDEF,
	"DEFENSE":        PositionDEF,
	"TMWR":           PositionDEF, // MFL team defense/special teams
	"TEAM":           PositionDEF,
}

// fullTeamNames maps full city/team names to canonical codes. Keys are uppercase.
var fullTeamNames = map[string]string{
	"ARIZONA CARDINALS":    "ARI",
	"ATLANTA FALCONS":      "ATL",
	"BALTIMORE RAVENS":     "BAL",
	"BUFFALO BILLS":        "BUF",
	"CAROLINA PANTHERS":    "CAR",
	"CHICAGO BEARS":        "CHI",
	"CINCINNATI BENGALS":   "CIN",
	"CLEVELAND BROWNS":     "CLE",
	"DALLAS COWBOYS":       "DAL",
	"DENVER BRONCOS":       "DEN",
	"DETROIT LIONS":        "DET",
	"GREEN BAY PACKERS":    "GB",
	"HOUSTON TEXANS":       "HOU",
	"INDIANAPOLIS COLTS":   "IND",
	"JACKSONVILLE JAGUARS": "JAC",
	"KANSAS CITY CHIEFS":   "KC",
	"LAS VEGAS RAIDERS":    "LV",
	"LOS ANGELES CHARGERS": "LAC",
	"LOS ANGELES RAMS":     "LAR",
	"MIAMI DOLPHINS":       "MIA",
	"MINNESOTA VIKINGS":    "MIN",
	"NEW ENGLAND PATRIOTS": "NE",
	"NEW ORLEANS SAINTS":   "NO",
	"NEW YORK GIANTS":      "NYG",
	"NEW YORK JETS":        "NYJ",
	"PHILADELPHIA EAGLES":  "PHI",
	"PITTSBURGH STEELERS":  "PIT",
	"SAN FRANCISCO 49ERS":  "SF",
	"SEATTLE SEAHAWKS":     "SEA",
	"TAMPA BAY BUCCANEERS": "TB",
	"TENNESSEE TITANS":     "TEN",
	"WASHINGTON COMMANDERS": "WAS",
}

// teamAliases maps abbreviation variants and nicknames onto canonical codes.
// Platforms disagree on several of these (JAX vs JAC, WSH vs WAS, ...).
var teamAliases = map[string]string{
	"JAX": "JAC",
	"LAS": "LV",
	"LVR": "LV",
	"WSH": "WAS",
	"GBP": "GB",
	"KCC": "KC",
	"NEP": "NE",
	"NOS": "NO",
	"SFO": "SF",
	"TBB": "TB",

	"JAGUARS":    "JAC",
	"RAIDERS":    "LV",
	"CHIEFS":     "KC",
	"PACKERS":    "GB",
	"PATRIOTS":   "NE",
	"SAINTS":     "NO",
	"49ERS":      "SF",
	"BUCS":       "TB",
	"BUCCANEERS": "TB",
	"COMMANDERS": "WAS",
}

// canonicalTeams is the closed set of 32 team codes.
var canonicalTeams = map[string]bool{
	"ARI": true, "ATL": true, "BAL": true, "BUF": true, "CAR": true,
	"CHI": true, "CIN": true, "CLE": true, "DAL": true, "DEN": true,
	"DET": true, "GB": true, "HOU": true, "IND": true, "JAC": true,
	"KC": true, "LAC": true, "LAR": true, "LV": true, "MIA": true,
	"MIN": true, "NE": true, "NO": true, "NYG": true, "NYJ": true,
	"PHI": true, "PIT": true, "SEA": true, "SF": true, "TB": true,
	"TEN": true, "WAS": true,
}

// nameSuffixes are generational suffixes that "Last, First" reordering must
// keep attached to the surname. Order matters: longer tokens first.
var nameSuffixes = []string{"JR", "SR", "III", "II", "IV", "V"}

// NormalizeName folds a player name into its comparable form: lowercase,
// apostrophes and periods stripped, "Last, First" reordered, internal
// whitespace collapsed. Normalizing already-normalized output is a no-op.
func NormalizeName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", "")
	s = reorderLastFirst(s)
	return strings.Join(strings.Fields(s), " ")
}

// reorderLastFirst converts MFL-style "last, first" names to "first last",
// moving generational suffixes back to the end: "smith jr, john" becomes
// "john smith jr".
func reorderLastFirst(s string) string {
	last, first, ok := strings.Cut(s, ",")
	if !ok {
		return s
	}
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	if last == "" || first == "" {
		return s
	}

	for _, suffix := range nameSuffixes {
		tail := " " + strings.ToLower(suffix)
		if strings.HasSuffix(last, tail) {
			base := strings.TrimSpace(strings.TrimSuffix(last, tail))
			return first + " " + base + tail
		}
	}
	return first + " " + last
}

// NormalizePosition maps long-form and platform-specific position tokens onto
// the closed set {QB, RB, WR, TE, K, DEF}. Case-insensitive; compound slots
// like "RB/WR" classify by the first token; unrecognized input returns
// PositionUnknown. Never errors.
func NormalizePosition(position string) string {
	p := strings.ToUpper(strings.TrimSpace(position))
	if p == "" {
		return PositionUnknown
	}

	// Compound positions ("RB/WR", "QB/RB"): classify by the primary slot.
	// D/ST is an alias, not a compound.
	if first, _, ok := strings.Cut(p, "/"); ok && p != "D/ST" {
		p = strings.TrimSpace(first)
	}

	if mapped, ok := positionAliases[p]; ok {
		return mapped
	}
	return PositionUnknown
}

// NormalizeTeam maps full team names and abbreviation variants onto the
// canonical 2–3 letter code. Unrecognized input returns TeamUnknown.
func NormalizeTeam(team string) string {
	t := strings.ToUpper(strings.TrimSpace(team))
	if t == "" {
		return TeamUnknown
	}
	if code, ok := fullTeamNames[t]; ok {
		return code
	}
	if code, ok := teamAliases[t]; ok {
		return code
	}
	if canonicalTeams[t] {
		return t
	}
	return TeamUnknown
}

// DisplayName produces the stored display form of a raw platform name:
// "Last, First" reordered and whitespace collapsed, original casing kept.
func DisplayName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	if last, first, ok := strings.Cut(s, ","); ok {
		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)
		if last != "" && first != "" {
			for _, suffix := range nameSuffixes {
				tail := " " + suffix
				if strings.HasSuffix(strings.ToUpper(last), tail) {
					base := strings.TrimSpace(last[:len(last)-len(tail)])
					s = first + " " + base + last[len(last)-len(tail):]
					return strings.Join(strings.Fields(s), " ")
				}
			}
			s = first + " " + last
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// IsStarterPosition reports whether a normalized position belongs to the
// skill starter set.
func IsStarterPosition(position string) bool {
	return StarterPositions[position]
}
