// Package domain defines the canonical entity types shared by ingestion,
// the waiver feature builder, and storage. Every downstream table references
// players by canonical ID regardless of which platform supplied the data.
package domain

import "time"

// Platform identifies an external fantasy platform.
type Platform string

const (
	PlatformSleeper Platform = "sleeper"
	PlatformMFL     Platform = "mfl"
	PlatformESPN    Platform = "espn"
	PlatformYahoo   Platform = "yahoo"
)

// Platforms lists all known platforms in a stable order.
var Platforms = []Platform{PlatformSleeper, PlatformMFL, PlatformESPN, PlatformYahoo}

// Player is the canonical cross-platform identity record.
// CanonicalID is deterministically derived from (name, position, team) and is
// reproducible by re-running the generator — never a sequence or random value.
type Player struct {
	CanonicalID        string
	SleeperID          *string
	MFLID              *string
	ESPNID             *string
	YahooID            *string
	Name               string
	Position           string
	Team               string
	DepthChartPosition *string
	IsStarter          bool
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PlatformID returns the player's external ID for a platform, if known.
func (p *Player) PlatformID(platform Platform) *string {
	switch platform {
	case PlatformSleeper:
		return p.SleeperID
	case PlatformMFL:
		return p.MFLID
	case PlatformESPN:
		return p.ESPNID
	case PlatformYahoo:
		return p.YahooID
	default:
		return nil
	}
}

// SetPlatformID records an external ID for a platform.
func (p *Player) SetPlatformID(platform Platform, id string) {
	switch platform {
	case PlatformSleeper:
		p.SleeperID = &id
	case PlatformMFL:
		p.MFLID = &id
	case PlatformESPN:
		p.ESPNID = &id
	case PlatformYahoo:
		p.YahooID = &id
	}
}

// PlatformIDCount returns how many platforms know this player.
func (p *Player) PlatformIDCount() int {
	n := 0
	for _, pl := range Platforms {
		if p.PlatformID(pl) != nil {
			n++
		}
	}
	return n
}
