package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/firmdex/ai/mock"
	"github.com/poiesic/firmdex/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "name,industry,location,revenue,team_size,founded,website,description,needs,challenges"

func csvInput(rows ...string) string {
	return csvHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func newTestLoader(t *testing.T, opts ...Option) (*Loader, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.New(mock.NewMockEmbedderWithDimension(2))
	require.NoError(t, err)

	opts = append([]Option{WithRetry(2, time.Millisecond)}, opts...)
	loader, err := NewLoader(cat, opts...)
	require.NoError(t, err)
	t.Cleanup(loader.Release)
	return loader, cat
}

func TestNewLoader(t *testing.T) {
	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewLoader(nil)
		assert.Equal(t, ErrCatalogRequired, err)
	})

	t.Run("invalid retry policy", func(t *testing.T) {
		cat, err := catalog.New(mock.NewMockEmbedderWithDimension(2))
		require.NoError(t, err)
		_, err = NewLoader(cat, WithRetry(0, time.Millisecond))
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

func TestLoadCSV(t *testing.T) {
	loader, cat := newTestLoader(t)

	input := csvInput(
		"Acme,Tech,Berlin,1000000,12,2015,https://acme.io,analytics,customers,scaling",
		"BitWorks,Tech,London,500000,8,2018,https://bitworks.dev,tooling,funding,sales",
		"CareFirst,Health,Paris,200000,30,2009,https://carefirst.fr,scheduling,expertise,procurement",
	)
	report, err := loader.LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 3, cat.Count())
}

func TestLoadCSVSkipsDuplicateRows(t *testing.T) {
	loader, cat := newTestLoader(t, WithPoolSize(1))

	input := csvInput(
		"Acme,Tech,Berlin,1000000,12,2015,https://acme.io,analytics,customers,scaling",
		"Acme,Tech,Berlin,1000000,12,2015,https://acme.io,analytics,customers,scaling",
	)
	report, err := loader.LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, cat.Count())
}

func TestLoadCSVSkipsCompaniesAlreadyInCatalog(t *testing.T) {
	loader, cat := newTestLoader(t)
	input := csvInput("Acme,Tech,Berlin,1000000,12,2015,https://acme.io,analytics,customers,scaling")

	_, err := loader.LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, cat.Count())

	report, err := loader.LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Duplicates)
	assert.Equal(t, 1, cat.Count())
}

func TestLoadCSVCountsBadRows(t *testing.T) {
	loader, cat := newTestLoader(t)

	input := csvInput(
		"Acme,Tech,Berlin,1000000,12,2015,https://acme.io,analytics,customers,scaling",
		"BadRevenue,Tech,Berlin,lots,12,2015,https://bad.io,d,n,c",
		"TooOld,Tech,Berlin,1000,12,1700,https://old.io,d,n,c",
	)
	report, err := loader.LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, cat.Count())
}

func TestLoadCSVConcurrentWorkersKeepCountsConsistent(t *testing.T) {
	loader, cat := newTestLoader(t, WithPoolSize(4))

	// Interleave good, invalid, and duplicate rows so the serial loop updates
	// the report while pool workers are still running.
	var rows []string
	for i := 0; i < 40; i++ {
		name := string(rune('A'+i%26)) + "Corp" + string(rune('a'+i/26))
		rows = append(rows,
			name+",Tech,Berlin,1000000,12,2015,https://"+name+".io,analytics,customers,scaling",
			"BadFounded,Tech,Berlin,1000,12,1700,https://bad.io,d,n,c",
			name+",Tech,Berlin,1000000,12,2015,https://"+name+".io,analytics,customers,scaling",
		)
	}
	report, err := loader.LoadCSV(context.Background(), strings.NewReader(csvInput(rows...)))
	require.NoError(t, err)

	assert.Equal(t, 40, report.Created)
	assert.Equal(t, 40, report.Duplicates)
	assert.Equal(t, 40, report.Failed)
	assert.Equal(t, 40, cat.Count())
}

func TestLoadCSVRejectsBadHeader(t *testing.T) {
	loader, _ := newTestLoader(t)

	_, err := loader.LoadCSV(context.Background(), strings.NewReader("name,industry\nAcme,Tech\n"))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestCheckHeaderIsCaseInsensitive(t *testing.T) {
	header := strings.Split("Name,Industry,Location,Revenue,Team_Size,Founded,Website,Description,Needs,Challenges", ",")
	assert.NoError(t, checkHeader(header))
}
