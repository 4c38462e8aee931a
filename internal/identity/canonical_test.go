package identity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var canonicalIDPattern = regexp.MustCompile(`^NFL_[0-9A-F]{8}$`)

func TestCanonicalIDFormat(t *testing.T) {
	id := CanonicalID("Josh Allen", "QB", "BUF")
	assert.Regexp(t, canonicalIDPattern, id)
}

func TestCanonicalIDDeterministic(t *testing.T) {
	a := CanonicalID("Josh Allen", "QB", "BUF")
	b := CanonicalID("Josh Allen", "QB", "BUF")
	assert.Equal(t, a, b)
}

func TestCanonicalIDNormalizesInputs(t *testing.T) {
	base := CanonicalID("Ja'Marr Chase", "WR", "CIN")
	assert.Equal(t, base, CanonicalID("jamarr chase", "Wide Receiver", "Cincinnati Bengals"))
	assert.Equal(t, base, CanonicalID("  JaMarr   Chase ", "wr", "cin"))
}

func TestCanonicalIDDistinguishesFields(t *testing.T) {
	base := CanonicalID("Josh Allen", "QB", "BUF")
	assert.NotEqual(t, base, CanonicalID("Josh Allen", "WR", "BUF"))
	assert.NotEqual(t, base, CanonicalID("Josh Allen", "QB", "MIA"))
	assert.NotEqual(t, base, CanonicalID("Joshua Allen", "QB", "BUF"))
}

func TestCanonicalIDAliasesCollapse(t *testing.T) {
	// JAX and JAC are the same franchise on different platforms.
	assert.Equal(t,
		CanonicalID("Trevor Lawrence", "QB", "JAX"),
		CanonicalID("Trevor Lawrence", "QB", "JAC"))
}
