package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// RouteParticipationEstimate estimates route_pct as a fraction of snap_pct
// for pass-catchers when the feed carries no route data. A heuristic with no
// empirical basis; downstream TPRR thresholds depend on its scale, so change
// it deliberately.
var RouteParticipationEstimate = 0.85

// passCatchers are the positions the route estimate applies to.
var passCatchers = map[string]bool{
	identity.PositionWR: true,
	identity.PositionTE: true,
	identity.PositionRB: true,
}

// LoadUsage ingests one week of usage records. Rows merge field-by-field
// with whatever earlier passes stored for the same (player, week, season).
// Records that cannot be resolved to a player are recorded and skipped.
func (ig *Ingestor) LoadUsage(ctx context.Context, week, seasonYear int, recs []Record) Result {
	var result Result

	for _, rec := range recs {
		canonicalID, ok := ig.resolvePlayer(ctx, rec)
		if !ok {
			result.AddErrorf("usage record unresolvable: %v", rec["name"])
			continue
		}

		u := &domain.UsageRecord{
			PlayerID:       canonicalID,
			Week:           week,
			Season:         seasonYear,
			SnapPct:        floatField(rec, "snap_pct", "snap_share"),
			RoutePct:       floatField(rec, "route_pct", "route_share"),
			TargetShare:    floatField(rec, "target_share"),
			CarryShare:     floatField(rec, "carry_share", "rush_share"),
			RZTouches:      intField(rec, "rz_touches", "redzone_touches"),
			EZTargets:      intField(rec, "ez_targets", "endzone_targets"),
			Targets:        intField(rec, "targets"),
			Carries:        intField(rec, "carries", "rush_attempts"),
			Receptions:     intField(rec, "receptions"),
			ReceivingYards: floatField(rec, "receiving_yards", "rec_yards"),
			RushingYards:   floatField(rec, "rushing_yards", "rush_yards"),
			Touchdowns:     intField(rec, "touchdowns", "tds"),
		}

		position, _ := str(rec, "position")
		if u.RoutePct == nil && u.SnapPct != nil && passCatchers[identity.NormalizePosition(position)] {
			est := *u.SnapPct * RouteParticipationEstimate
			u.RoutePct = &est
		}

		if err := ig.stores.Usage.Upsert(ctx, u); err != nil {
			result.AddErrorf("upsert usage %s week %d: %v", canonicalID, week, err)
			continue
		}
		result.UsageUpserted++
	}

	ig.logger.Info("usage load done", "week", week, "season", seasonYear, "summary", result.Summary())
	return result
}

// resolvePlayer resolves a feed record to a canonical player, creating the
// mapping when the record carries enough attributes.
func (ig *Ingestor) resolvePlayer(ctx context.Context, rec Record) (string, bool) {
	name, _ := str(rec, "name", "player_name", "full_name")
	position, _ := str(rec, "position")
	team, _ := str(rec, "team")

	if sleeperID, ok := str(rec, "sleeper_id"); ok {
		if id, ok := ig.resolver.ResolveCanonicalID(ctx, identity.PlayerRef{
			Platform: domain.PlatformSleeper, PlatformID: sleeperID,
			Name: name, Position: position, Team: team,
		}); ok {
			return id, true
		}
	}
	if name == "" || position == "" {
		return "", false
	}
	return ig.resolver.AddPlayerMapping(ctx, identity.PlayerInfo{
		Name: name, Position: position, Team: team, Active: true,
	})
}
