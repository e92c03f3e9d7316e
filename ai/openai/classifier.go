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
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/temporal"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// classifierTemperature keeps refinement near-deterministic, matching the
// original agent policy.
const classifierTemperature = 0.1

// QueryClassifier implements ai.QueryClassifier using OpenAI-compatible chat APIs.
type QueryClassifier struct {
	client       llms.Model
	historyTurns int
	logger       *slog.Logger
}

// classification is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type classification struct {
	Specificity    string `json:"specificity"`
	RefinedQuery   string `json:"refined_query"`
	FilterDay      string `json:"filter_day"`
	FilterDate     string `json:"filter_date"`
	FilterLocation string `json:"filter_location"`
}

// newQueryClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryClassifier(config *ai.Config) (*QueryClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryClassifier{
		client:       client,
		historyTurns: config.HistoryTurns,
		logger:       slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewQueryClassifier creates a new query classifier using the provided configuration.
//
// Returns ai.QueryClassifier interface to enforce abstraction.
func NewQueryClassifier(config *ai.Config) (ai.QueryClassifier, error) {
	return newQueryClassifier(config)
}

// Classify refines and classifies a user utterance using an LLM, then
// deterministically enriches the result so the date/weekday cross-reference
// rules hold regardless of model behavior.
func (c *QueryClassifier) Classify(ctx context.Context, userText string, history []core.Turn, now time.Time) (*core.QueryClassification, error) {
	userText = strings.TrimSpace(userText)

	// Vague or empty input defaults to a Broad search anchored to today,
	// without a model round-trip.
	if userText == "" {
		return c.defaultBroad(now), nil
	}

	content := c.buildMessages(userText, history, now)

	// Try up to 3 times in case of malformed JSON
	var result classification
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content,
			llms.WithTemperature(classifierTemperature), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			c.logger.Error("no choices returned from model")
			return nil, ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return nil, lastErr
	}

	qc := &core.QueryClassification{
		RefinedQuery:   strings.TrimSpace(result.RefinedQuery),
		Specificity:    core.ParseSpecificity(result.Specificity),
		FilterDay:      strings.TrimSpace(result.FilterDay),
		FilterDate:     strings.TrimSpace(result.FilterDate),
		FilterLocation: strings.TrimSpace(result.FilterLocation),
	}
	if qc.RefinedQuery == "" {
		qc.RefinedQuery = userText
	}
	qc.RefinedQuery = temporal.EnrichQuery(qc.RefinedQuery, now)

	c.logger.Debug("classified query",
		"specificity", qc.Specificity.String(),
		"refined", qc.RefinedQuery)

	return qc, nil
}

// buildMessages assembles the system prompt, recent conversation turns, and
// the current question.
func (c *QueryClassifier) buildMessages(userText string, history []core.Turn, now time.Time) []llms.MessageContent {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildClassifierPrompt(now)),
			},
		},
	}

	if c.historyTurns > 0 && len(history) > c.historyTurns {
		history = history[len(history)-c.historyTurns:]
	}
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Speaker == core.SpeakerAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(turn.Content)},
		})
	}

	return append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(userText)},
	})
}

// defaultBroad builds the fallback classification for vague input: a Broad
// search anchored to the current date. No structured filters are set since
// nothing was explicitly mentioned.
func (c *QueryClassifier) defaultBroad(now time.Time) *core.QueryClassification {
	return &core.QueryClassification{
		RefinedQuery: "community events " + temporal.FormatDate(now) + " (" + now.Weekday().String() + ")",
		Specificity:  core.SpecificityBroad,
	}
}
