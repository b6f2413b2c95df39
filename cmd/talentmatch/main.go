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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/talentmatch"
	"github.com/poiesic/talentmatch/ai"
	"github.com/poiesic/talentmatch/core"
	"github.com/poiesic/talentmatch/ingest"
	"github.com/poiesic/talentmatch/match"
	"github.com/urfave/cli/v2"
)

var aiFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "ai-host",
		Usage: "OpenAI-compatible service host URL for both embeddings and chat",
	},
	&cli.StringFlag{
		Name:  "embedding-model",
		Usage: "Embedding model name",
	},
	&cli.IntFlag{
		Name:  "embedding-dimensions",
		Usage: "Embedding vector dimensions",
	},
	&cli.StringFlag{
		Name:  "summarizer-model",
		Usage: "Chat model used for profile summarization",
	},
	&cli.StringFlag{
		Name:  "evaluator-model",
		Usage: "Chat model used for match evaluation",
	},
}

func main() {
	app := &cli.App{
		Name:  "talentmatch",
		Usage: "Semantic matching engine for talent and content",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				Required: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest content items from a JSONL file",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "JSONL file of items (one object per line)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Default item kind when a line omits one (article, job)",
						Value: "article",
					},
					&cli.BoolFlag{
						Name:  "skip-existing",
						Usage: "Skip items that already have stored chunks",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent item workers",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks per embedding request",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				}, aiFlags...),
			},
			{
				Name:    "vectorize-candidate",
				Aliases: []string{"vectorize"},
				Usage:   "Summarize and embed a candidate profile",
				Action: vectorizeCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "External candidate identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Candidate full name",
					},
					&cli.StringFlag{
						Name:  "headline",
						Usage: "Candidate headline",
					},
					&cli.StringFlag{
						Name:  "location",
						Usage: "Candidate location",
					},
					&cli.StringFlag{
						Name:    "src",
						Aliases: []string{"s"},
						Usage:   "File holding the raw profile text (reads stdin when omitted)",
					},
				}, aiFlags...),
			},
			{
				Name:   "update-context",
				Usage:  "Merge new context into a candidate's embedding field",
				Action: updateContextCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "External candidate identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "field",
						Usage:    "Field to merge into (preferences, interests)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "text",
						Usage:    "Context to append",
						Required: true,
					},
				}, aiFlags...),
			},
			{
				Name:   "match",
				Usage:  "Rank stored content for a candidate",
				Action: matchCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "External candidate identifier",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "kind",
						Usage: "Restrict to item kinds (article, job); repeatable",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Minimum cosine similarity for raw chunk hits",
						Value: 0.30,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of fused results to report",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "diversify",
						Usage: "Prefer N specific titles over generic career-page content (0 disables)",
					},
				}, aiFlags...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiConfigFromFlags builds the provider configuration, keeping defaults for
// any flag the caller left unset.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{}
	if host := c.String("ai-host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if dim := c.Int("embedding-dimensions"); dim > 0 {
		opts = append(opts, ai.WithEmbeddingDimensions(dim))
	}
	if model := c.String("summarizer-model"); model != "" {
		opts = append(opts, ai.WithSummarizerModel(model))
	}
	if model := c.String("evaluator-model"); model != "" {
		opts = append(opts, ai.WithEvaluatorModel(model))
	}
	return ai.NewConfig(opts...)
}

func openEngine(c *cli.Context) (*talentmatch.Engine, error) {
	config := aiConfigFromFlags(c)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return talentmatch.NewEngine(c.String("db"), talentmatch.WithAIConfig(config))
}

func parseKind(s string) (core.ItemKind, error) {
	switch strings.ToLower(s) {
	case "article":
		return core.ItemKindArticle, nil
	case "job", "job-posting":
		return core.ItemKindJobPosting, nil
	default:
		return 0, fmt.Errorf("unknown item kind %q: must be article or job", s)
	}
}

// itemLine is the JSONL shape accepted by the ingest command.
type itemLine struct {
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
	Content     string    `json:"content"`
}

func readItems(filename string, defaultKind core.ItemKind) ([]*core.SourceItem, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []*core.SourceItem
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var parsed itemLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		kind := defaultKind
		if parsed.Kind != "" {
			kind, err = parseKind(parsed.Kind)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}

		items = append(items, &core.SourceItem{
			Kind:        kind,
			Title:       parsed.Title,
			URL:         parsed.URL,
			Author:      parsed.Author,
			PublishedAt: parsed.PublishedAt,
			Content:     parsed.Content,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	defaultKind, err := parseKind(c.String("kind"))
	if err != nil {
		return err
	}

	items, err := readItems(c.String("src"), defaultKind)
	if err != nil {
		return fmt.Errorf("reading items: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []ingest.Option{
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithMaxRetries(c.Int("max-retries")),
		ingest.WithRetryDelay(c.Duration("retry-delay")),
		ingest.WithSkipExisting(c.Bool("skip-existing")),
		ingest.WithProgress(os.Stderr),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingest.WithPoolSize(size))
	}
	if dim := c.Int("embedding-dimensions"); dim > 0 {
		opts = append(opts, ingest.WithEmbeddingDimensions(dim))
	}

	pipeline, err := engine.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Run(ctx, items)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed %d, skipped %d, failed %d (%d chunks)\n",
		report.Processed, report.Skipped, report.Failed, report.Chunks)
	return nil
}

func vectorizeCommand(c *cli.Context) error {
	ctx := context.Background()

	var text []byte
	var err error
	if src := c.String("src"); src != "" {
		text, err = os.ReadFile(src)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading profile text: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	manager, err := engine.NewProfileManager()
	if err != nil {
		return err
	}

	candidate := &core.CandidateProfile{
		ExternalId: c.String("id"),
		FullName:   c.String("name"),
		Headline:   c.String("headline"),
		Location:   c.String("location"),
	}

	if err := manager.VectorizeProfile(ctx, candidate, string(text)); err != nil {
		return fmt.Errorf("vectorizing profile: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Vectorized profile %s\n", candidate.ExternalId)
	return nil
}

func updateContextCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	manager, err := engine.NewProfileManager()
	if err != nil {
		return err
	}

	field := core.FieldName(strings.ToLower(c.String("field")))
	if err := manager.MergeFieldContext(ctx, c.String("id"), field, c.String("text")); err != nil {
		return fmt.Errorf("updating context: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Updated %s field for %s\n", field, c.String("id"))
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var kinds []core.ItemKind
	for _, s := range c.StringSlice("kind") {
		kind, err := parseKind(s)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	config := match.NewConfig(
		match.WithSimilarityThreshold(float32(c.Float64("threshold"))),
		match.WithFusionLimit(c.Int("limit")),
	)
	matcher, err := engine.NewMatcher(match.WithConfig(config))
	if err != nil {
		return err
	}

	report, err := matcher.Match(ctx, c.String("id"), kinds...)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if n := c.Int("diversify"); n > 0 {
		report.Ranked = match.Diversify(report.Ranked, n)
	}

	printReport(os.Stdout, report)
	return nil
}

func printReport(w io.Writer, report *core.MatchReport) {
	if len(report.Ranked) == 0 {
		fmt.Fprintln(w, "No matches found")
		return
	}

	fmt.Fprintf(w, "Ranked %d items\n", len(report.Ranked))
	for i, c := range report.Ranked {
		fmt.Fprintf(w, "%d: %q [%0.3f via %s]\n   %s\n", i+1, c.Title, c.Similarity, c.Field, c.URL)
	}

	if report.FallbackUsed {
		fmt.Fprintln(w, "\nApproved (similarity fallback):")
	} else {
		fmt.Fprintln(w, "\nApproved:")
	}
	if len(report.Approved) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, a := range report.Approved {
		fmt.Fprintf(w, "  %q [%0.3f]\n", a.Title, a.Similarity)
		if a.Justification != "" {
			fmt.Fprintf(w, "    %s\n", a.Justification)
		}
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
