package openai

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/firmdex/ai"
)

const taggingPromptTemplate = `You are a company analyst. Convert the given company description into structured tags and return them as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing brace }. The object maps category names to arrays of tag strings:

%s

Rules:
- Use only the category names and tag values listed above, exactly as written.
- Include a category only when at least one of its tags clearly applies.
- Include only tags that are explicitly mentioned or clearly implied by the description. Do not hallucinate.
- Omit a category rather than guessing.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "We build a SaaS platform using machine learning to detect fraud for banks."
Output:
{
  "industry": ["fintech", "cybersecurity"],
  "technology": ["machine-learning"],
  "business_model": ["b2b", "saas"],
  "market": ["financial-institutions"],
  "solution_type": ["platform", "security"]
}`

// buildTaggingPrompt creates the system prompt with tag categories embedded.
func buildTaggingPrompt() string {
	categories := make([]string, 0, len(ai.TagCategories))
	for category := range ai.TagCategories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, category := range categories {
		b.WriteString(category)
		b.WriteString(": ")
		b.WriteString(strings.Join(ai.TagCategories[category], ", "))
		b.WriteString("\n")
	}
	return fmt.Sprintf(taggingPromptTemplate, b.String())
}
