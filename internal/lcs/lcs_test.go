package lcs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comparative-genomics/ipp/internal/pwaln"
)

func entry(refStart, refEnd, qryStart, qryEnd uint32) pwaln.Entry {
	return pwaln.Entry{RefStart: refStart, RefEnd: refEnd, QryStart: qryStart, QryEnd: qryEnd}
}

func TestLongest_ForwardStrand(t *testing.T) {
	seq := []pwaln.Entry{
		entry(0, 10, 0, 10),
		entry(20, 30, 20, 30),
		entry(40, 50, 40, 50),
	}
	got := Longest(seq)
	assert.Equal(t, seq, got)
}

func TestLongest_RejectsOutOfOrderEntry(t *testing.T) {
	seq := []pwaln.Entry{
		entry(0, 10, 0, 10),
		entry(20, 30, 500, 510), // not collinear with the others
		entry(40, 50, 40, 50),
	}
	got := Longest(seq)
	assert.Len(t, got, 2)
	assert.Equal(t, seq[0], got[0])
	assert.Equal(t, seq[2], got[1])
}

func TestLongest_ReverseStrand(t *testing.T) {
	seq := []pwaln.Entry{
		entry(0, 10, 100, 90),
		entry(20, 30, 80, 70),
		entry(40, 50, 60, 50),
	}
	got := Longest(seq)
	assert.Equal(t, seq, got)
}

func TestLongest_TieBreaksForward(t *testing.T) {
	// Two forward and two reverse collinear entries: both results have
	// length 2.
	seq := []pwaln.Entry{
		entry(0, 10, 0, 10),
		entry(20, 30, 20, 30),
		entry(40, 50, 100, 90),
		entry(60, 70, 80, 70),
	}
	got := Longest(seq)
	assert.False(t, got[0].IsQryReversed())
}

func TestLongest_Empty(t *testing.T) {
	assert.Nil(t, Longest(nil))
}

func TestLongest_InterleavedStrandsIsCollinearChain(t *testing.T) {
	// A pathological input with many interleaved forward and reverse
	// runs; the result must still be a valid collinear chain.
	seq := []pwaln.Entry{
		entry(0, 5, 0, 5),
		entry(5, 10, 100, 95),
		entry(10, 15, 10, 15),
		entry(15, 20, 90, 85),
		entry(20, 25, 20, 25),
	}
	got := Longest(seq)
	for i := 1; i < len(got); i++ {
		if !got[i].IsQryReversed() {
			assert.LessOrEqual(t, got[i-1].QryEnd, got[i].QryStart)
		}
	}
}
