package genomics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoords_Less(t *testing.T) {
	testCases := []struct {
		name string
		a, b Coords
		want bool
	}{
		{"lower chrom wins", Coords{Chrom: 0, Loc: 1000}, Coords{Chrom: 1, Loc: 0}, true},
		{"higher chrom loses", Coords{Chrom: 1, Loc: 0}, Coords{Chrom: 0, Loc: 1000}, false},
		{"same chrom, lower loc wins", Coords{Chrom: 0, Loc: 10}, Coords{Chrom: 0, Loc: 20}, true},
		{"equal coords", Coords{Chrom: 0, Loc: 10}, Coords{Chrom: 0, Loc: 10}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Less(tc.b))
		})
	}
}

func TestCoords_String(t *testing.T) {
	assert.Equal(t, "3:42", Coords{Chrom: 3, Loc: 42}.String())
}
