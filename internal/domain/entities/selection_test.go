package entities

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrawWinnersWithoutReplacement(t *testing.T) {
	pool := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9", "u10"}
	winners := DrawWinners(pool, 3, rand.New(rand.NewSource(1)))

	require.Len(t, winners, 3)
	seen := map[string]bool{}
	for _, w := range winners {
		require.Contains(t, pool, w)
		require.False(t, seen[w], "duplicate winner %s", w)
		seen[w] = true
	}
	// The input pool must stay intact for audit and rerolls.
	require.Len(t, pool, 10)
}

func TestDrawWinnersClampsToPoolSize(t *testing.T) {
	winners := DrawWinners([]string{"u1", "u2"}, 5, rand.New(rand.NewSource(1)))
	require.Len(t, winners, 2)
}

func TestDrawWinnersEmptyCases(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	require.Empty(t, DrawWinners(nil, 3, rng))
	require.Empty(t, DrawWinners([]string{"u1"}, 0, rng))
	require.Empty(t, DrawWinners([]string{"u1"}, -1, rng))
}

func TestDrawWinnersDeterministicForSeed(t *testing.T) {
	pool := []string{"u1", "u2", "u3", "u4", "u5"}
	first := DrawWinners(pool, 3, rand.New(rand.NewSource(7)))
	second := DrawWinners(pool, 3, rand.New(rand.NewSource(7)))
	require.Equal(t, first, second)
}

func TestResidualPoolExcludesWinners(t *testing.T) {
	d := &Drawing{
		Participants: []string{"u1", "u2", "u3", "u4"},
		Winners:      []string{"u1", "u2"},
	}
	require.Equal(t, []string{"u3", "u4"}, d.ResidualPool(true))
	require.Equal(t, []string{"u1", "u2", "u3", "u4"}, d.ResidualPool(false))
}

func TestTallyRanksAndKeepsDeclarationOrderOnTies(t *testing.T) {
	p := &Poll{
		Question: "q?",
		Options: []PollOption{
			{Label: "C", Votes: 2},
			{Label: "A", Votes: 5},
			{Label: "B", Votes: 5},
		},
	}
	entries, total := p.Tally()
	require.Equal(t, 12, total)

	require.Equal(t, "A", entries[0].Label)
	require.Equal(t, "B", entries[1].Label) // tie keeps declaration order
	require.Equal(t, "C", entries[2].Label)

	require.InDelta(t, 41.7, entries[0].Percent, 0.05)
	require.InDelta(t, 41.7, entries[1].Percent, 0.05)
	require.InDelta(t, 16.7, entries[2].Percent, 0.05)
}

func TestTallyWithNoVotes(t *testing.T) {
	p := &Poll{
		Question: "q?",
		Options:  []PollOption{{Label: "A"}, {Label: "B"}},
	}
	entries, total := p.Tally()
	require.Equal(t, 0, total)
	for _, entry := range entries {
		require.Zero(t, entry.Percent)
	}
}
