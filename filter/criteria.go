package filter

// Criteria is the typed predicate set for structured filtering. A nil
// pointer or empty slice/string means "no constraint on that dimension";
// the zero value is the identity filter. All supplied predicates are
// conjunctive.
type Criteria struct {
	// Revenue range, inclusive on both ends.
	MinRevenue *int64
	MaxRevenue *int64

	// Team size range, inclusive.
	MinTeamSize *int
	MaxTeamSize *int

	// Founded year range, inclusive.
	MinFounded *int
	MaxFounded *int

	// Industry membership; comparison is case-insensitive and trimmed.
	Industries []string

	// Location membership; comparison is case-insensitive and trimmed.
	Locations []string

	// Case-insensitive substring of the company name.
	NameContains string

	// Case-insensitive substring of the website URL.
	WebsiteDomain string
}

// IsZero reports whether no predicate is set, in which case Apply is the
// identity function.
func (c Criteria) IsZero() bool {
	return c.MinRevenue == nil && c.MaxRevenue == nil &&
		c.MinTeamSize == nil && c.MaxTeamSize == nil &&
		c.MinFounded == nil && c.MaxFounded == nil &&
		len(c.Industries) == 0 && len(c.Locations) == 0 &&
		c.NameContains == "" && c.WebsiteDomain == ""
}

// Int64 returns a pointer to v, for concise Criteria literals.
func Int64(v int64) *int64 {
	return &v
}

// Int returns a pointer to v, for concise Criteria literals.
func Int(v int) *int {
	return &v
}
