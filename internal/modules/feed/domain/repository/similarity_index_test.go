package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankLess(t *testing.T) {
	a := Candidate{ItemId: "a", Distance: 0.1}
	b := Candidate{ItemId: "b", Distance: 0.2}
	assert.True(t, RankLess(a, b))
	assert.False(t, RankLess(b, a))

	// equal distance falls back to id ordering
	c := Candidate{ItemId: "c", Distance: 0.1}
	assert.True(t, RankLess(a, c))
	assert.False(t, RankLess(c, a))
	assert.False(t, RankLess(a, a))
}

func TestAfterBound(t *testing.T) {
	bound := &RankBound{Distance: 0.2, ItemId: "m"}

	assert.True(t, AfterBound(Candidate{ItemId: "a", Distance: 0.3}, bound))
	assert.False(t, AfterBound(Candidate{ItemId: "z", Distance: 0.1}, bound))

	// at equal distance only strictly larger ids pass
	assert.True(t, AfterBound(Candidate{ItemId: "n", Distance: 0.2}, bound))
	assert.False(t, AfterBound(Candidate{ItemId: "m", Distance: 0.2}, bound))
	assert.False(t, AfterBound(Candidate{ItemId: "a", Distance: 0.2}, bound))

	// nil bound admits everything
	assert.True(t, AfterBound(Candidate{ItemId: "a", Distance: 2}, nil))
}

func TestNormalizeRanking(t *testing.T) {
	cs := []Candidate{
		{ItemId: "d", Distance: 0.3},
		{ItemId: "b", Distance: 0.1},
		{ItemId: "a", Distance: 0.1},
		{ItemId: "e", Distance: 0.9},
		{ItemId: "c", Distance: 0.2},
	}

	got := NormalizeRanking(cs, nil)
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ItemId)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
}

func TestNormalizeRankingFiltersBound(t *testing.T) {
	cs := []Candidate{
		{ItemId: "a", Distance: 0.1},
		{ItemId: "b", Distance: 0.1},
		{ItemId: "c", Distance: 0.2},
		{ItemId: "d", Distance: 0.3},
	}

	got := NormalizeRanking(cs, &RankBound{Distance: 0.1, ItemId: "a"})
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ItemId)
	}
	// b shares the bound's distance but has a larger id, so it stays
	assert.Equal(t, []string{"b", "c", "d"}, ids)

	got = NormalizeRanking(got, &RankBound{Distance: 0.9, ItemId: "zz"})
	assert.Empty(t, got)
}
