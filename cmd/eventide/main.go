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


package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/eventide"
	"github.com/poiesic/eventide/ai"
	"github.com/poiesic/eventide/core"
	"github.com/poiesic/eventide/reembed"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "eventide",
		Usage: "Conversational assistant for community event listings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Ask a single question about community events",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     assistantFlags(),
			},
			{
				Name:   "chat",
				Usage:  "Interactive chat session (history kept in process only)",
				Action: chatCommand,
				Flags:  assistantFlags(),
			},
			{
				Name:   "ingest",
				Usage:  "Load event listings from a JSON file and embed them",
				Action: ingestCommand,
				Flags: append(assistantFlags(),
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "JSON file of event documents ({contents, metadata} objects)",
						Required: true,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for all stored listings",
				Action: reembedCommand,
				Flags: append(assistantFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of listings to embed per batch",
						Value: reembed.DefaultBatchSize,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func assistantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "classifier-host",
			Usage: "Classifier service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "classifier-model",
			Usage: "Classifier model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.IntFlag{
			Name:  "broad-depth",
			Usage: "Retrieval depth for broad queries",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "specific-depth",
			Usage: "Retrieval depth for specific queries",
			Value: 20,
		},
		&cli.BoolFlag{
			Name:  "and-filters",
			Usage: "Require all metadata filters to match (default is any)",
		},
	}
}

func openAssistant(c *cli.Context) (*eventide.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithClassifierHost(c.String("classifier-host")),
		ai.WithClassifierModel(c.String("classifier-model")),
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	filterMode := core.FilterModeOr
	if c.Bool("and-filters") {
		filterMode = core.FilterModeAnd
	}

	return eventide.NewAssistant(c.String("db"), false,
		eventide.WithAIConfig(aiConfig),
		eventide.WithRetrievalDepths(c.Int("broad-depth"), c.Int("specific-depth")),
		eventide.WithFilterCombination(filterMode),
	)
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	coordinator, err := assistant.NewCoordinator()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	for chunk := range coordinator.AnswerStream(c.Context, question, nil, time.Now()) {
		fmt.Print(chunk)
	}
	fmt.Println()
	return nil
}

func chatCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	coordinator, err := assistant.NewCoordinator()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	fmt.Println("Ask about community events. Ctrl-D to quit.")

	var history []core.Turn
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		var response strings.Builder
		for chunk := range coordinator.AnswerStream(c.Context, question, history, time.Now()) {
			fmt.Print(chunk)
			response.WriteString(chunk)
		}
		fmt.Println()

		history = append(history,
			core.Turn{Speaker: core.SpeakerUser, Content: question},
			core.Turn{Speaker: core.SpeakerAssistant, Content: response.String()},
		)
	}

	return scanner.Err()
}

// ingestDocument is the JSON shape accepted by the ingest command.
type ingestDocument struct {
	Contents string            `json:"contents"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func ingestCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("src"))
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	var entries []ingestDocument
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse source file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("source file contains no documents")
	}

	assistant, err := openAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	pipeline, err := assistant.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to build ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	docs := make([]*core.EventDocument, len(entries))
	for i, entry := range entries {
		docs[i] = &core.EventDocument{
			Contents: entry.Contents,
			Metadata: entry.Metadata,
		}
	}

	added, err := pipeline.Ingest(c.Context, docs...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	// Wait for async embedding before exiting
	drainCtx, cancel := context.WithTimeout(c.Context, 10*time.Minute)
	defer cancel()
	if err := pipeline.Drain(drainCtx); err != nil {
		return fmt.Errorf("embedding did not complete: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d event documents\n", len(added))
	return nil
}

func reembedCommand(c *cli.Context) error {
	assistant, err := openAssistant(c)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	config := reembed.DefaultConfig()
	config.BatchSize = c.Int("batch-size")

	reembedder := assistant.NewReembedder(config, os.Stderr)
	return reembedder.Run(c.Context)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
