package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Company is a single catalog entry. All ten fields must pass
// ValidateCompany before the record may enter a store.
type Company struct {
	Name        string
	Industry    string
	Location    string
	Revenue     int64 // Annual revenue, non-negative
	TeamSize    int
	Founded     int // Calendar year
	Website     string
	Description string
	Needs       string
	Challenges  string
}

// DescriptionText returns the combined text embedded into the description
// space. Needs is embedded separately into its own space.
func (c *Company) DescriptionText() string {
	return c.Description + ". Challenges: " + c.Challenges
}

// NeedsText returns the text embedded into the needs space.
func (c *Company) NeedsText() string {
	return c.Needs
}

// Fingerprint is a content hash used to detect duplicate companies during
// bulk ingestion. It is not a storage identifier.
type Fingerprint uint64

// FingerprintFromContent generates a deterministic fingerprint from text
// using BLAKE2b hashing, so identical content always produces the same value.
func FingerprintFromContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// Fingerprint returns the company's duplicate-detection fingerprint,
// derived from its name and website.
func (c *Company) Fingerprint() Fingerprint {
	return FingerprintFromContent(c.Name + "|" + c.Website)
}

// SearchResult is a company enriched with an optional relevance score.
// MatchScore is nil when the result was produced by pure filtering with no
// semantic ranking, and otherwise holds the similarity 1/(1+distance)
// rounded to three decimals.
type SearchResult struct {
	Name        string
	MatchScore  *float64
	Description string
	Needs       string
	Challenges  string
	Website     string
	Industry    string
	Location    string
	Revenue     int64
	TeamSize    int
	Founded     int
}

// ResultFromCompany builds a SearchResult from a company. Pass a nil score
// for unranked (filter-only) results.
func ResultFromCompany(c *Company, score *float64) *SearchResult {
	return &SearchResult{
		Name:        c.Name,
		MatchScore:  score,
		Description: c.Description,
		Needs:       c.Needs,
		Challenges:  c.Challenges,
		Website:     c.Website,
		Industry:    c.Industry,
		Location:    c.Location,
		Revenue:     c.Revenue,
		TeamSize:    c.TeamSize,
		Founded:     c.Founded,
	}
}
