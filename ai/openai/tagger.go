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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/firmdex/ai"
	"github.com/poiesic/firmdex/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TagGenerator implements ai.TagGenerator using OpenAI-compatible chat APIs.
type TagGenerator struct {
	client llms.Model
	logger *slog.Logger
}

// newTagGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTagGenerator(config *ai.Config) (*TagGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.TaggerHost),
		openai.WithToken("none"),
		openai.WithModel(config.TaggerModel),
	)
	if err != nil {
		return nil, err
	}

	return &TagGenerator{
		client: client,
		logger: slog.Default().With("component", "openai-tagger"),
	}, nil
}

// NewTagGenerator creates a new tag generator using the provided
// configuration.
//
// Returns ai.TagGenerator interface to enforce abstraction.
func NewTagGenerator(config *ai.Config) (ai.TagGenerator, error) {
	return newTagGenerator(config)
}

// GenerateTags converts a company description into categorized tags using an
// LLM. Tags not present in ai.TagCategories are discarded.
func (g *TagGenerator) GenerateTags(ctx context.Context, description string) (map[string][]string, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description cannot be empty", core.ErrValidation)
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildTaggingPrompt())},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(description)},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var parsed map[string][]string
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			g.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", core.ErrEmbedding, err)
		}

		if len(response.Choices) < 1 {
			g.logger.Debug("no choices returned from model")
			return map[string][]string{}, nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
			lastErr = err
			g.logger.Warn("error parsing tagger response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		g.logger.Error("failed to parse tagger response after retries", "err", lastErr)
		return nil, lastErr
	}

	// Keep only tags belonging to known categories.
	tags := make(map[string][]string, len(parsed))
	for category, values := range parsed {
		known, ok := ai.TagCategories[category]
		if !ok {
			continue
		}
		for _, value := range values {
			value = strings.ToLower(strings.TrimSpace(value))
			if contains(known, value) {
				tags[category] = append(tags[category], value)
			}
		}
	}

	g.logger.Debug("generated tags", "categories", len(tags))
	return tags, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
