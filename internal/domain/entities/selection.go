package entities

import (
	"math/rand"
	"sort"
)

// DrawWinners picks up to count distinct ids from pool, uniformly without
// replacement (partial Fisher-Yates over a copy). Deterministic for a given
// rng. An empty pool or count <= 0 yields an empty slice, never an error.
func DrawWinners(pool []string, count int, rng *rand.Rand) []string {
	remaining := make([]string, len(pool))
	copy(remaining, pool)
	if count > len(remaining) {
		count = len(remaining)
	}
	winners := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		idx := rng.Intn(len(remaining))
		winners = append(winners, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return winners
}

// ResidualPool returns the candidates for a reroll. With exclusion enabled,
// every previously recorded winner is removed so nobody wins twice.
func (d *Drawing) ResidualPool(excludeWinners bool) []string {
	if !excludeWinners {
		pool := make([]string, len(d.Participants))
		copy(pool, d.Participants)
		return pool
	}
	won := make(map[string]struct{}, len(d.Winners))
	for _, id := range d.Winners {
		won[id] = struct{}{}
	}
	pool := make([]string, 0, len(d.Participants))
	for _, id := range d.Participants {
		if _, ok := won[id]; !ok {
			pool = append(pool, id)
		}
	}
	return pool
}

// TallyEntry is one ranked line of a poll result.
type TallyEntry struct {
	Label   string
	Votes   int
	Percent float64
}

// Tally ranks options by vote count, descending. Ties keep declaration
// order (stable sort). Percentages are 0 when nobody voted.
func (p *Poll) Tally() ([]TallyEntry, int) {
	total := p.TotalVotes()
	entries := make([]TallyEntry, len(p.Options))
	for i, opt := range p.Options {
		entry := TallyEntry{Label: opt.Label, Votes: opt.Votes}
		if total > 0 {
			entry.Percent = float64(opt.Votes) / float64(total) * 100
		}
		entries[i] = entry
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Votes > entries[j].Votes
	})
	return entries, total
}
