package main

import (
	"testing"

	"github.com/poiesic/firmdex/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test"}))
	})
}

func TestCriteriaFromFlags(t *testing.T) {
	var got filter.Criteria
	app := &cli.App{
		Name: "test",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "min-revenue"},
			&cli.Int64Flag{Name: "max-revenue"},
			&cli.IntFlag{Name: "min-team-size"},
			&cli.IntFlag{Name: "max-team-size"},
			&cli.IntFlag{Name: "min-founded"},
			&cli.IntFlag{Name: "max-founded"},
			&cli.StringSliceFlag{Name: "industry"},
			&cli.StringSliceFlag{Name: "location"},
			&cli.StringFlag{Name: "name-contains"},
			&cli.StringFlag{Name: "website-domain"},
		},
		Action: func(c *cli.Context) error {
			got = criteriaFromFlags(c)
			return nil
		},
	}

	t.Run("unset flags stay nil", func(t *testing.T) {
		require.NoError(t, app.Run([]string{"test"}))
		assert.True(t, got.IsZero())
	})

	t.Run("set flags are carried over", func(t *testing.T) {
		require.NoError(t, app.Run([]string{
			"test",
			"--min-revenue", "500000",
			"--max-founded", "2020",
			"--industry", "Tech", "--industry", "Health",
			"--name-contains", "works",
		}))
		require.NotNil(t, got.MinRevenue)
		assert.Equal(t, int64(500_000), *got.MinRevenue)
		assert.Nil(t, got.MaxRevenue)
		require.NotNil(t, got.MaxFounded)
		assert.Equal(t, 2020, *got.MaxFounded)
		assert.Equal(t, []string{"Tech", "Health"}, got.Industries)
		assert.Equal(t, "works", got.NameContains)
	})
}

func TestLoadCommandRequiresFileArgument(t *testing.T) {
	app := &cli.App{
		Name: "test",
		Commands: []*cli.Command{
			{
				Name:   "load",
				Action: loadCommand,
				Flags:  databaseFlags(),
			},
		},
	}

	err := app.Run([]string{"test", "load", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSV file")
}
