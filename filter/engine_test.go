package filter

import (
	"testing"

	"github.com/poiesic/firmdex/core"
	"github.com/stretchr/testify/assert"
)

var companies = []core.Company{
	{Name: "Acme Analytics", Industry: "Tech", Location: "Berlin", Revenue: 1_000_000, TeamSize: 10, Founded: 2015, Website: "https://acme.io"},
	{Name: "BetterHealth", Industry: "Health", Location: "London", Revenue: 500_000, TeamSize: 50, Founded: 2010, Website: "https://betterhealth.co.uk"},
	{Name: "CargoWorks", Industry: "Logistics", Location: "berlin ", Revenue: 9_000_000, TeamSize: 200, Founded: 1998, Website: "https://cargoworks.de"},
	{Name: "DataForge", Industry: "tech", Location: "Paris", Revenue: 50_000, TeamSize: 3, Founded: 2022, Website: "https://dataforge.io"},
}

func lookup(pos int) (core.Company, bool) {
	if pos < 0 || pos >= len(companies) {
		return core.Company{}, false
	}
	return companies[pos], true
}

func allPositions() []int {
	return []int{0, 1, 2, 3}
}

func TestApplyEmptyCriteriaIsIdentity(t *testing.T) {
	got := Apply(allPositions(), Criteria{}, lookup)
	assert.Equal(t, allPositions(), got)
}

func TestRevenueRange(t *testing.T) {
	t.Run("min only", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{MinRevenue: Int64(600_000)}, lookup)
		assert.Equal(t, []int{0, 2}, got)
	})

	t.Run("max only", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{MaxRevenue: Int64(500_000)}, lookup)
		assert.Equal(t, []int{1, 3}, got)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{MinRevenue: Int64(500_000), MaxRevenue: Int64(1_000_000)}, lookup)
		assert.Equal(t, []int{0, 1}, got)
	})
}

func TestTeamSizeRange(t *testing.T) {
	got := Apply(allPositions(), Criteria{MinTeamSize: Int(10), MaxTeamSize: Int(50)}, lookup)
	assert.Equal(t, []int{0, 1}, got)
}

func TestFoundedRange(t *testing.T) {
	got := Apply(allPositions(), Criteria{MinFounded: Int(2000), MaxFounded: Int(2015)}, lookup)
	assert.Equal(t, []int{0, 1}, got)
}

func TestIndustryMembership(t *testing.T) {
	t.Run("case-insensitive single value", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{Industries: []string{"TECH"}}, lookup)
		assert.Equal(t, []int{0, 3}, got)
	})

	t.Run("multiple values", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{Industries: []string{"tech", "Health"}}, lookup)
		assert.Equal(t, []int{0, 1, 3}, got)
	})

	t.Run("no members", func(t *testing.T) {
		got := Apply(allPositions(), Criteria{Industries: []string{"Finance"}}, lookup)
		assert.Empty(t, got)
	})
}

func TestLocationMembershipTrimsWhitespace(t *testing.T) {
	// Position 2 stores "berlin " with trailing whitespace.
	got := Apply(allPositions(), Criteria{Locations: []string{" Berlin"}}, lookup)
	assert.Equal(t, []int{0, 2}, got)
}

func TestNameContains(t *testing.T) {
	got := Apply(allPositions(), Criteria{NameContains: "works"}, lookup)
	assert.Equal(t, []int{2}, got)
}

func TestWebsiteDomain(t *testing.T) {
	got := Apply(allPositions(), Criteria{WebsiteDomain: ".io"}, lookup)
	assert.Equal(t, []int{0, 3}, got)
}

func TestConjunction(t *testing.T) {
	combined := Apply(allPositions(), Criteria{MinRevenue: Int64(100_000), Industries: []string{"tech"}}, lookup)

	// Conjunction equals intersection of the individual filters.
	byRevenueOnly := Apply(allPositions(), Criteria{MinRevenue: Int64(100_000)}, lookup)
	byIndustryOnly := Apply(allPositions(), Criteria{Industries: []string{"tech"}}, lookup)

	set := make(map[int]bool)
	for _, p := range byRevenueOnly {
		set[p] = true
	}
	var intersection []int
	for _, p := range byIndustryOnly {
		if set[p] {
			intersection = append(intersection, p)
		}
	}
	assert.Equal(t, intersection, combined)
	assert.Equal(t, []int{0}, combined)
}

func TestApplyDropsUnresolvablePositions(t *testing.T) {
	got := Apply([]int{0, 17, -2, 3}, Criteria{MinRevenue: Int64(0)}, lookup)
	assert.Equal(t, []int{0, 3}, got)
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{MinRevenue: Int64(1)}.IsZero())
	assert.False(t, Criteria{Industries: []string{"tech"}}.IsZero())
	assert.False(t, Criteria{NameContains: "a"}.IsZero())
}
