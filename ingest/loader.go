package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/firmdex/catalog"
	"github.com/poiesic/firmdex/core"
)

// csvColumns is the required header of a bulk-load file, in order.
var csvColumns = []string{
	"name", "industry", "location", "revenue", "team_size",
	"founded", "website", "description", "needs", "challenges",
}

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Loader bulk-loads company profiles from CSV into a catalog. Rows are
// validated and deduplicated serially, then created concurrently on a worker
// pool; embedding calls are retried with exponential backoff. Row failures
// are logged and counted, they do not abort the load.
type Loader struct {
	catalog     *catalog.Catalog
	pool        *ants.Pool
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent profile creation.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		if l.pool != nil {
			l.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithRetry sets the retry policy for profile creation.
// Default is 3 attempts starting at 500ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(l *Loader) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		l.maxAttempts = maxAttempts
		l.baseDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a new bulk loader over the catalog.
func NewLoader(cat *catalog.Catalog, opts ...Option) (*Loader, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		catalog:     cat,
		pool:        pool,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// Report summarizes one bulk load.
type Report struct {
	Created    int // Profiles added to the catalog
	Duplicates int // Rows skipped because their fingerprint was already seen
	Failed     int // Rows rejected by validation, parsing, or profile creation
}

// LoadCSV reads company rows from r and creates a profile for each. The file
// must start with the canonical ten-column header. Duplicate companies, by
// name and website fingerprint, are skipped; this covers both rows already in
// the catalog and repeats within the file.
//
// Returns an error only for structural problems (unreadable input, wrong
// header). Everything row-level lands in the report.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %w", ErrMalformedInput, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	seen := make(map[core.Fingerprint]bool)
	for _, existing := range l.catalog.All() {
		seen[existing.Fingerprint()] = true
	}

	// The report is shared between this loop and the pool workers; every
	// counter update goes through mu.
	report := &Report{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	countFailed := func() {
		mu.Lock()
		report.Failed++
		mu.Unlock()
	}

	rowNum := 1
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Field-count and quoting problems are per-row data errors.
			l.logger.Warn("skipping malformed row", "row", rowNum, "err", err)
			countFailed()
			continue
		}

		company, err := parseRow(row)
		if err != nil {
			l.logger.Warn("skipping unparseable row", "row", rowNum, "err", err)
			countFailed()
			continue
		}

		clean, err := core.ValidateCompany(company)
		if err != nil {
			l.logger.Warn("skipping invalid row", "row", rowNum, "name", company.Name, "err", err)
			countFailed()
			continue
		}

		fp := clean.Fingerprint()
		if seen[fp] {
			l.logger.Debug("skipping duplicate row", "row", rowNum, "name", clean.Name)
			mu.Lock()
			report.Duplicates++
			mu.Unlock()
			continue
		}
		seen[fp] = true

		wg.Add(1)
		profile := clean
		if err := l.pool.Submit(func() {
			defer wg.Done()
			err := RetryWithBackoff(ctx, func() error {
				_, err := l.catalog.CreateProfile(ctx, profile)
				return err
			}, l.maxAttempts, l.baseDelay)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Error("failed to create profile", "name", profile.Name, "err", err)
				report.Failed++
				return
			}
			report.Created++
		}); err != nil {
			wg.Done()
			l.logger.Error("failed to submit row to pool", "row", rowNum, "err", err)
			countFailed()
		}
	}

	wg.Wait()
	l.logger.Info("bulk load finished",
		"created", report.Created, "duplicates", report.Duplicates, "failed", report.Failed)
	return report, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrMalformedInput, len(csvColumns), len(header))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != csvColumns[i] {
			return fmt.Errorf("%w: column %d must be %q, got %q", ErrMalformedInput, i, csvColumns[i], col)
		}
	}
	return nil
}

func parseRow(row []string) (core.Company, error) {
	var c core.Company
	if len(row) != len(csvColumns) {
		return c, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedInput, len(csvColumns), len(row))
	}

	revenue, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
	if err != nil {
		return c, fmt.Errorf("%w: revenue: %w", ErrMalformedInput, err)
	}
	teamSize, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return c, fmt.Errorf("%w: team_size: %w", ErrMalformedInput, err)
	}
	founded, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return c, fmt.Errorf("%w: founded: %w", ErrMalformedInput, err)
	}

	c = core.Company{
		Name:        row[0],
		Industry:    row[1],
		Location:    row[2],
		Revenue:     revenue,
		TeamSize:    teamSize,
		Founded:     founded,
		Website:     row[6],
		Description: row[7],
		Needs:       row[8],
		Challenges:  row[9],
	}
	return c, nil
}
