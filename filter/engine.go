// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package filter

import (
	"strings"

	"github.com/poiesic/firmdex/core"
)

// Lookup resolves a position to its company record. Positions that do not
// resolve are dropped by every stage.
type Lookup func(position int) (core.Company, bool)

// Apply narrows the ordered position set to those whose records satisfy all
// supplied predicates. Stages run in a fixed order (revenue, team size,
// founded, industry, location, name substring, website domain), each
// narrowing the surviving set. All predicates are conjunctive.
func Apply(positions []int, c Criteria, lookup Lookup) []int {
	out := positions
	if c.MinRevenue != nil || c.MaxRevenue != nil {
		out = byRevenue(out, c.MinRevenue, c.MaxRevenue, lookup)
	}
	if c.MinTeamSize != nil || c.MaxTeamSize != nil {
		out = byTeamSize(out, c.MinTeamSize, c.MaxTeamSize, lookup)
	}
	if c.MinFounded != nil || c.MaxFounded != nil {
		out = byFounded(out, c.MinFounded, c.MaxFounded, lookup)
	}
	if len(c.Industries) > 0 {
		out = byIndustry(out, c.Industries, lookup)
	}
	if len(c.Locations) > 0 {
		out = byLocation(out, c.Locations, lookup)
	}
	if c.NameContains != "" {
		out = byNameContains(out, c.NameContains, lookup)
	}
	if c.WebsiteDomain != "" {
		out = byWebsiteDomain(out, c.WebsiteDomain, lookup)
	}
	return out
}

// byRevenue keeps positions whose revenue satisfies the supplied inclusive
// bounds.
func byRevenue(positions []int, min, max *int64, lookup Lookup) []int {
	return keep(positions, lookup, func(c *core.Company) bool {
		if min != nil && c.Revenue < *min {
			return false
		}
		if max != nil && c.Revenue > *max {
			return false
		}
		return true
	})
}

func byTeamSize(positions []int, min, max *int, lookup Lookup) []int {
	return keep(positions, lookup, func(c *core.Company) bool {
		if min != nil && c.TeamSize < *min {
			return false
		}
		if max != nil && c.TeamSize > *max {
			return false
		}
		return true
	})
}

func byFounded(positions []int, min, max *int, lookup Lookup) []int {
	return keep(positions, lookup, func(c *core.Company) bool {
		if min != nil && c.Founded < *min {
			return false
		}
		if max != nil && c.Founded > *max {
			return false
		}
		return true
	})
}

// byIndustry keeps positions whose normalized industry is a member of the
// supplied set.
func byIndustry(positions []int, industries []string, lookup Lookup) []int {
	members := normalizeSet(industries)
	return keep(positions, lookup, func(c *core.Company) bool {
		return members[normalize(c.Industry)]
	})
}

func byLocation(positions []int, locations []string, lookup Lookup) []int {
	members := normalizeSet(locations)
	return keep(positions, lookup, func(c *core.Company) bool {
		return members[normalize(c.Location)]
	})
}

func byNameContains(positions []int, substring string, lookup Lookup) []int {
	needle := normalize(substring)
	return keep(positions, lookup, func(c *core.Company) bool {
		return strings.Contains(strings.ToLower(c.Name), needle)
	})
}

func byWebsiteDomain(positions []int, domain string, lookup Lookup) []int {
	needle := normalize(domain)
	return keep(positions, lookup, func(c *core.Company) bool {
		return strings.Contains(strings.ToLower(c.Website), needle)
	})
}

func keep(positions []int, lookup Lookup, pred func(*core.Company) bool) []int {
	out := make([]int, 0, len(positions))
	for _, pos := range positions {
		c, ok := lookup(pos)
		if !ok {
			continue
		}
		if pred(&c) {
			out = append(out, pos)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[normalize(v)] = true
	}
	return set
}
