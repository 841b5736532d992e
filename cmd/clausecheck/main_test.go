package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestScoreCommandArgs(t *testing.T) {
	app := &cli.App{
		Name: "clausecheck",
		Commands: []*cli.Command{
			{
				Name:   "score",
				Action: scoreCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "clausecheck.yaml",
					},
				},
			},
		},
	}

	t.Run("document argument is required", func(t *testing.T) {
		err := app.Run([]string{"clausecheck", "score"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document argument")
	})

	t.Run("at most one document argument", func(t *testing.T) {
		err := app.Run([]string{"clausecheck", "score", "a.txt", "b.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document argument")
	})
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	run := func(level string) error {
		app := &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		return app.Run([]string{"clausecheck", "--log-level", level})
	}

	t.Run("accepts valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
			assert.NoError(t, run(level), level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		err := run("verbose")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestReadDocument(t *testing.T) {
	t.Run("reads file contents", func(t *testing.T) {
		path := t.TempDir() + "/doc.txt"
		require.NoError(t, os.WriteFile(path, []byte("policy text"), 0o644))

		got, err := readDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "policy text", got)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := readDocument(t.TempDir() + "/nope.txt")
		assert.Error(t, err)
	})
}
