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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	firmdex "github.com/poiesic/firmdex"
	"github.com/poiesic/firmdex/ai"
	"github.com/poiesic/firmdex/ai/openai"
	"github.com/poiesic/firmdex/core"
	"github.com/poiesic/firmdex/filter"
	"github.com/poiesic/firmdex/ingest"
	"github.com/poiesic/firmdex/storage"
	"github.com/poiesic/firmdex/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "firmdex",
		Usage: "Semantic search over company profiles",
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
				Name:      "load",
				Usage:     "Bulk-load company profiles from a CSV file",
				ArgsUsage: "<file.csv>",
				Action:    loadCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent embedding",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search company descriptions and challenges",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
			{
				Name:      "needs",
				Usage:     "Search companies by their stated needs",
				ArgsUsage: "<query>",
				Action:    needsCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
			{
				Name:      "filter",
				Usage:     "Filter companies by typed fields, optionally combined with a semantic query",
				ArgsUsage: "[query]",
				Action:    filterCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.Int64Flag{Name: "min-revenue", Usage: "Minimum annual revenue, inclusive"},
					&cli.Int64Flag{Name: "max-revenue", Usage: "Maximum annual revenue, inclusive"},
					&cli.IntFlag{Name: "min-team-size", Usage: "Minimum team size, inclusive"},
					&cli.IntFlag{Name: "max-team-size", Usage: "Maximum team size, inclusive"},
					&cli.IntFlag{Name: "min-founded", Usage: "Earliest founding year, inclusive"},
					&cli.IntFlag{Name: "max-founded", Usage: "Latest founding year, inclusive"},
					&cli.StringSliceFlag{Name: "industry", Usage: "Industry to match (repeatable)"},
					&cli.StringSliceFlag{Name: "location", Usage: "Location to match (repeatable)"},
					&cli.StringFlag{Name: "name-contains", Usage: "Substring of the company name"},
					&cli.StringFlag{Name: "website-domain", Usage: "Substring of the website URL"},
				),
			},
			{
				Name:      "tags",
				Usage:     "Generate category tags for a company description",
				ArgsUsage: "<description>",
				Action:    tagsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "tagger-host",
						Usage: "Tagging service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:  "tagger-model",
						Usage: "Tagging model name",
						Value: "gpt-4o-mini",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate all stored vectors with a new embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "dimension",
						Usage: "Vector dimension of the new embedding model",
						Value: 1536,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of texts to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Vector dimension of the embedding model",
			Value: 1536,
		},
	}
}

func openDatabase(c *cli.Context) (*firmdex.Database, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)
	return firmdex.NewDatabase(c.String("db"), firmdex.WithAIConfig(cfg))
}

func loadCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument")
	}

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	loader, err := db.NewLoader(
		ingest.WithPoolSize(c.Int("pool-size")),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}
	defer loader.Release()

	file, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer file.Close()

	report, err := loader.LoadCSV(c.Context, file)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if err := db.Save(c.Context); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("Created: %d\nDuplicates: %d\nFailed: %d\n",
		report.Created, report.Duplicates, report.Failed)
	return nil
}

func searchCommand(c *cli.Context) error {
	return runSemanticSearch(c, false)
}

func needsCommand(c *cli.Context) error {
	return runSemanticSearch(c, true)
}

func runSemanticSearch(c *cli.Context, needsSpace bool) error {
	if c.NArg() < 1 {
		return fmt.Errorf("expected a query argument")
	}
	query := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	var results []*core.SearchResult
	if needsSpace {
		results, err = searcher.SearchByNeeds(c.Context, query, c.Int("top-k"))
	} else {
		results, err = searcher.SearchByText(c.Context, query, c.Int("top-k"))
	}
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func filterCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.SearchWithFilters(c.Context, query, criteriaFromFlags(c), c.Int("top-k"))
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func criteriaFromFlags(c *cli.Context) filter.Criteria {
	var criteria filter.Criteria
	if c.IsSet("min-revenue") {
		criteria.MinRevenue = filter.Int64(c.Int64("min-revenue"))
	}
	if c.IsSet("max-revenue") {
		criteria.MaxRevenue = filter.Int64(c.Int64("max-revenue"))
	}
	if c.IsSet("min-team-size") {
		criteria.MinTeamSize = filter.Int(c.Int("min-team-size"))
	}
	if c.IsSet("max-team-size") {
		criteria.MaxTeamSize = filter.Int(c.Int("max-team-size"))
	}
	if c.IsSet("min-founded") {
		criteria.MinFounded = filter.Int(c.Int("min-founded"))
	}
	if c.IsSet("max-founded") {
		criteria.MaxFounded = filter.Int(c.Int("max-founded"))
	}
	criteria.Industries = c.StringSlice("industry")
	criteria.Locations = c.StringSlice("location")
	criteria.NameContains = c.String("name-contains")
	criteria.WebsiteDomain = c.String("website-domain")
	return criteria
}

func printResults(results []*core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, r := range results {
		score := "-"
		if r.MatchScore != nil {
			score = fmt.Sprintf("%.3f", *r.MatchScore)
		}
		fmt.Printf("%2d. %-30s score=%s  %s / %s  revenue=%d team=%d founded=%d\n",
			i+1, r.Name, score, r.Industry, r.Location, r.Revenue, r.TeamSize, r.Founded)
		fmt.Printf("    %s\n", r.Website)
	}
}

func tagsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("expected a description argument")
	}
	description := strings.Join(c.Args().Slice(), " ")

	cfg := ai.NewConfig(
		ai.WithTaggerHost(c.String("tagger-host")),
		ai.WithTaggerModel(c.String("tagger-model")),
	)
	tagger, err := openai.NewTagGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tag generator: %w", err)
	}

	tags, err := tagger.GenerateTags(c.Context, description)
	if err != nil {
		return fmt.Errorf("tag generation failed: %w", err)
	}

	for category, values := range tags {
		fmt.Printf("%s: %s\n", category, strings.Join(values, ", "))
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := c.Context

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()
	store := badger.NewSnapshotStore(backend)

	snap, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap.Len() == 0 {
		fmt.Println("Nothing to reembed.")
		return nil
	}

	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)
	embedder, err := openai.NewEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintf(os.Stderr, "Companies: %d\n\n", snap.Len())

	descTexts := make([]string, snap.Len())
	needsTexts := make([]string, snap.Len())
	for i := range snap.Companies {
		descTexts[i] = snap.Companies[i].DescriptionText()
		needsTexts[i] = snap.Companies[i].NeedsText()
	}

	embedAll := func(texts []string) ([][]float32, error) {
		out := make([][]float32, 0, len(texts))
		for start := 0; start < len(texts); start += batchSize {
			end := start + batchSize
			if end > len(texts) {
				end = len(texts)
			}
			var vecs [][]float32
			err := ingest.RetryWithBackoff(ctx, func() error {
				var embedErr error
				vecs, embedErr = embedder.EmbedTexts(ctx, texts[start:end])
				return embedErr
			}, c.Int("max-retries"), c.Duration("retry-delay"))
			if err != nil {
				return nil, err
			}
			out = append(out, vecs...)
			fmt.Fprintf(os.Stderr, "Embedded %d/%d\n", end, len(texts))
		}
		return out, nil
	}

	descVecs, err := embedAll(descTexts)
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	needsVecs, err := embedAll(needsTexts)
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	fresh := &storage.Snapshot{
		Dimension:    embedder.Dimension(),
		Companies:    snap.Companies,
		DescVectors:  descVecs,
		NeedsVectors: needsVecs,
	}
	if err := store.Save(ctx, fresh); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Printf("Reembedded %d companies at dimension %d.\n", snap.Len(), embedder.Dimension())
	return nil
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
