package mock

import (
	"context"
	"strings"

	"github.com/poiesic/firmdex/ai"
)

// MockTagGenerator is a test double for ai.TagGenerator.
// It allows custom behavior injection via a function field.
type MockTagGenerator struct {
	// GenerateTagsFunc is called by GenerateTags if set.
	// If nil, uses default keyword-matching behavior.
	GenerateTagsFunc func(ctx context.Context, description string) (map[string][]string, error)

	callCount int
}

// NewMockTagGenerator creates a mock tag generator with default behavior:
// any known tag value appearing verbatim in the description is returned
// under its category.
func NewMockTagGenerator() *MockTagGenerator {
	return &MockTagGenerator{}
}

// GenerateTags returns tags whose values literally occur in the description.
func (m *MockTagGenerator) GenerateTags(ctx context.Context, description string) (map[string][]string, error) {
	m.callCount++

	if m.GenerateTagsFunc != nil {
		return m.GenerateTagsFunc(ctx, description)
	}

	lower := strings.ToLower(description)
	tags := make(map[string][]string)
	for category, values := range ai.TagCategories {
		for _, value := range values {
			if strings.Contains(lower, value) {
				tags[category] = append(tags[category], value)
			}
		}
	}
	return tags, nil
}

// CallCount returns the number of times GenerateTags was called.
func (m *MockTagGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockTagGenerator) Reset() {
	m.callCount = 0
	m.GenerateTagsFunc = nil
}
