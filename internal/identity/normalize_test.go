package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Josh Allen", "josh allen"},
		{"apostrophe", "Ja'Marr Chase", "jamarr chase"},
		{"periods", "A.J. Brown", "aj brown"},
		{"last first", "Smith, John", "john smith"},
		{"last first with suffix", "Smith Jr., John", "john smith jr"},
		{"roman suffix", "Penny III, Elijah", "elijah penny iii"},
		{"extra whitespace", "  josh   allen ", "josh allen"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeName(tc.in))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{"Ja'Marr Chase", "Smith Jr., John", "A.J. Brown", "odell beckham jr"}
	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestNormalizePosition(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"QB", PositionQB},
		{"qb", PositionQB},
		{"Quarterback", PositionQB},
		{"HB", PositionRB},
		{"Running Back", PositionRB},
		{"Wide Receiver", PositionWR},
		{"Tight End", PositionTE},
		{"PK", PositionK},
		{"D/ST", PositionDEF},
		{"DST", PositionDEF},
		{"Def", PositionDEF},
		{"TMWR", PositionDEF},
		{"RB/WR", PositionRB},
		{"QB/RB", PositionQB},
		{"", PositionUnknown},
		{"OL", PositionUnknown},
		{"COACH", PositionUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePosition(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeTeam(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BUF", "BUF"},
		{"buf", "BUF"},
		{"JAX", "JAC"},
		{"JAC", "JAC"},
		{"WSH", "WAS"},
		{"LAS", "LV"},
		{"LVR", "LV"},
		{"Buffalo Bills", "BUF"},
		{"Kansas City Chiefs", "KC"},
		{"San Francisco 49ers", "SF"},
		{"49ers", "SF"},
		{"Jaguars", "JAC"},
		{"", TeamUnknown},
		{"FA", TeamUnknown},
		{"XYZ", TeamUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTeam(tc.in), "input %q", tc.in)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "John Smith", DisplayName("Smith, John"))
	assert.Equal(t, "John Smith Jr", DisplayName("Smith Jr, John"))
	assert.Equal(t, "Josh Allen", DisplayName("  Josh   Allen "))
	assert.Equal(t, "A.J. Brown", DisplayName("A.J. Brown"))
}

func TestIsStarterPosition(t *testing.T) {
	for _, pos := range []string{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF} {
		assert.True(t, IsStarterPosition(pos))
	}
	assert.False(t, IsStarterPosition(PositionUnknown))
	assert.False(t, IsStarterPosition("OL"))
}
