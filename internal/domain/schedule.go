package domain

import "time"

// ScheduleGame is one scheduled NFL game.
type ScheduleGame struct {
	GameID    string
	HomeTeam  string
	AwayTeam  string
	Week      int
	Season    int
	GameDate  *time.Time
	IsPlayoff bool
	Completed bool
}

// Opponent returns the opposing team code for the given team, or "" if the
// team is not part of this game.
func (g *ScheduleGame) Opponent(team string) string {
	switch team {
	case g.HomeTeam:
		return g.AwayTeam
	case g.AwayTeam:
		return g.HomeTeam
	default:
		return ""
	}
}

// InjuryReport is one week's injury designation for a player.
type InjuryReport struct {
	PlayerID       string
	Week           int
	Season         int
	ReportStatus   *string // Out, IR, Doubtful, Questionable, Probable
	PracticeStatus *string // DNP, LP, FP
	Description    *string
	UpdatedAt      time.Time
}

// DepthChartEntry is a player's rank on a team positional depth chart.
// Rank 1 is the starter.
type DepthChartEntry struct {
	PlayerID  string
	Team      string
	Position  string
	DepthRank int
	Week      int
	Season    int
	UpdatedAt time.Time
}

// BettingLine is the market line for one game. Implied totals are derived at
// ingest from the total and spread.
type BettingLine struct {
	GameID           string
	HomeTeam         string
	AwayTeam         string
	Week             int
	Season           int
	TotalLine        *float64
	SpreadLine       *float64 // negative = home favorite
	HomeMoneyline    *int
	AwayMoneyline    *int
	HomeImpliedTotal *float64
	AwayImpliedTotal *float64
	Sportsbook       string
	UpdatedAt        time.Time
}
