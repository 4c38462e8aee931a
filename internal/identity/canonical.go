package identity

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// canonicalIDPrefix marks IDs produced by this generator. The hash width is
// fixed so IDs are stable across runs and processes.
const (
	canonicalIDPrefix = "NFL_"
	canonicalIDHexLen = 8
)

// CanonicalID computes the deterministic cross-platform player identifier
// from a (name, position, team) triple. Inputs are normalized internally, so
// callers may pass raw platform strings: "Josh Allen"/"QB"/"BUF" and
// "  josh  allen "/"Quarterback"/"Buffalo Bills" hash identically.
//
// Formula: "NFL_" + first 8 hex chars (uppercase) of
// MD5(NAME_POSITION_TEAM) over the uppercased normalized fields.
func CanonicalID(name, position, team string) string {
	nameNorm := strings.ToUpper(NormalizeName(name))
	posNorm := NormalizePosition(position)
	teamNorm := NormalizeTeam(team)

	sum := md5.Sum([]byte(nameNorm + "_" + posNorm + "_" + teamNorm))
	return canonicalIDPrefix + strings.ToUpper(fmt.Sprintf("%x", sum)[:canonicalIDHexLen])
}
