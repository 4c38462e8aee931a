package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// Roster slot labels for the current-state table.
const (
	slotStarter = "STARTER"
	slotBench   = "BENCH"
)

// SyncRosters ingests one platform league's rosters: each record is one
// fantasy team carrying the owner ID and its platform player ID lists.
// The current-state table is destructively replaced for the platform+league
// in one transaction, and each placement is also recorded in the historical
// snapshot ledger for the week. Players that cannot be resolved are recorded
// and skipped.
func (ig *Ingestor) SyncRosters(ctx context.Context, platform domain.Platform, leagueID string, week, seasonYear int, teams []Record) Result {
	var result Result

	var entries []*domain.RosterEntry
	var snapshots []*domain.RosterSnapshot

	for _, team := range teams {
		userID, ok := str(team, "user_id", "owner_id", "franchise_id")
		if !ok {
			result.AddErrorf("roster team without owner: %v", team["roster_id"])
			continue
		}
		teamID, _ := str(team, "roster_id", "team_id")
		if teamID == "" {
			teamID = userID
		}

		starters := make(map[string]bool)
		for _, id := range stringList(team, "starters") {
			starters[id] = true
		}

		for _, platformID := range stringList(team, "players") {
			canonicalID, ok := ig.resolver.ResolveCanonicalID(ctx, identity.PlayerRef{
				Platform: platform, PlatformID: platformID,
			})
			if !ok {
				result.AddErrorf("roster player %s/%s unresolvable", platform, platformID)
				continue
			}

			slot := slotBench
			if starters[platformID] {
				slot = slotStarter
			}
			entries = append(entries, &domain.RosterEntry{
				PlayerID: canonicalID,
				Platform: platform,
				LeagueID: leagueID,
				UserID:   userID,
				Slot:     slot,
				IsActive: true,
			})
			snapshots = append(snapshots, &domain.RosterSnapshot{
				Platform: platform,
				LeagueID: leagueID,
				TeamID:   teamID,
				PlayerID: canonicalID,
				Week:     week,
				Season:   seasonYear,
				Slot:     slot,
			})
		}
	}

	if err := ig.stores.Rosters.ReplaceActive(ctx, platform, leagueID, entries); err != nil {
		result.AddErrorf("replace rosters %s/%s: %v", platform, leagueID, err)
		return result
	}
	result.RostersReplaced = len(entries)

	for _, snap := range snapshots {
		if err := ig.stores.Rosters.UpsertSnapshot(ctx, snap); err != nil {
			result.AddErrorf("snapshot %s/%s player %s: %v", platform, leagueID, snap.PlayerID, err)
			continue
		}
		result.SnapshotsUpserted++
	}

	ig.logger.Info("roster sync done",
		"platform", platform, "league_id", leagueID, "week", week, "summary", result.Summary())
	return result
}
