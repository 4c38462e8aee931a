package ingest

import (
	"context"

	"github.com/gridironlabs/waiverwire/internal/domain"
	"github.com/gridironlabs/waiverwire/internal/identity"
)

// SyncSleeperPlayers ingests the Sleeper full player pool, keyed by Sleeper
// player ID. Team defense entries arrive keyed by team code with the city
// and nickname split across first/last name; they normalize to position DEF
// like any other player. Entries at non-fantasy positions (linemen, coaches,
// staff) are counted as skipped.
func (ig *Ingestor) SyncSleeperPlayers(ctx context.Context, pool map[string]Record) Result {
	var result Result

	for sleeperID, rec := range pool {
		name, ok := str(rec, "full_name")
		if !ok {
			first, _ := str(rec, "first_name")
			last, _ := str(rec, "last_name")
			if first == "" && last == "" {
				result.Skipped++
				continue
			}
			name = first + " " + last
		}

		position, _ := str(rec, "position", "fantasy_position")
		if identity.NormalizePosition(position) == identity.PositionUnknown {
			result.Skipped++
			continue
		}
		team, _ := str(rec, "team")
		active, _ := boolean(rec, "active")

		canonicalID, ok := ig.resolver.AddPlayerMapping(ctx, identity.PlayerInfo{
			Name:       name,
			Position:   position,
			Team:       team,
			Platform:   domain.PlatformSleeper,
			PlatformID: sleeperID,
			Active:     active,
		})
		if !ok {
			result.AddErrorf("sleeper player %s (%s): mapping failed", sleeperID, name)
			continue
		}
		result.PlayersUpserted++

		if depthPos := stringField(rec, "depth_chart_position"); depthPos != nil {
			ig.recordDepthPosition(ctx, canonicalID, *depthPos, &result)
		}
	}

	ig.logger.Info("sleeper player sync done", "summary", result.Summary())
	return result
}

// SyncMFLPlayers ingests the MFL player list. MFL formats names "Last,
// First" and uses its own position vocabulary (TMWR for team defense units);
// normalization handles both.
func (ig *Ingestor) SyncMFLPlayers(ctx context.Context, players []Record) Result {
	var result Result

	for _, rec := range players {
		mflID, ok := str(rec, "id", "player_id")
		if !ok {
			result.AddErrorf("mfl player without id: %v", rec)
			continue
		}
		name, ok := str(rec, "name")
		if !ok {
			result.Skipped++
			continue
		}
		position, _ := str(rec, "position")
		if identity.NormalizePosition(position) == identity.PositionUnknown {
			result.Skipped++
			continue
		}
		team, _ := str(rec, "team")

		status, _ := str(rec, "status")
		active := status != "INACTIVE" && status != "RETIRED"

		_, ok = ig.resolver.AddPlayerMapping(ctx, identity.PlayerInfo{
			Name:       name,
			Position:   position,
			Team:       team,
			Platform:   domain.PlatformMFL,
			PlatformID: mflID,
			Active:     active,
		})
		if !ok {
			result.AddErrorf("mfl player %s (%s): mapping failed", mflID, name)
			continue
		}
		result.PlayersUpserted++
	}

	ig.logger.Info("mfl player sync done", "summary", result.Summary())
	return result
}

// recordDepthPosition writes the depth chart position onto the player row.
func (ig *Ingestor) recordDepthPosition(ctx context.Context, canonicalID, depthPos string, result *Result) {
	player, err := ig.stores.Players.GetByCanonicalID(ctx, canonicalID)
	if err != nil {
		result.AddErrorf("load player %s for depth position: %v", canonicalID, err)
		return
	}
	if player.DepthChartPosition != nil && *player.DepthChartPosition == depthPos {
		return
	}
	player.DepthChartPosition = &depthPos
	if err := ig.stores.Players.Update(ctx, player); err != nil {
		result.AddErrorf("update player %s depth position: %v", canonicalID, err)
	}
}
