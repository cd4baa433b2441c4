package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter"
	"github.com/aretw0/jotter/pkg/core"
)

// envDir names the environment variable holding the default data directory.
const envDir = "JOTTER_DIR"

// cli carries the persistent flags shared by every command.
type cli struct {
	dir        string
	adapter    string
	format     string
	message    string
	twoPhase   bool
	versioning bool
	readOnly   bool
	verbose    bool
	logger     *slog.Logger
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "jotter",
		Short: "A small notes store with tags and comments",
		Long: `jotter keeps a collection of notes in a single storage slot.
Every change is written through immediately: to a JSON or YAML file
(optionally versioned with git), a SQLite database, or a Badger store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(c.logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.dir, "dir", "d", "", "Data directory (default $"+envDir+", the nearest jotter root, or the working directory)")
	flags.StringVar(&c.adapter, "adapter", jotter.AdapterFS, "Storage adapter: fs, sqlite, badger or memory")
	flags.StringVar(&c.format, "format", "json", "Slot format: json or yaml")
	flags.StringVarP(&c.message, "message", "m", "", "Change reason recorded by versioned stores")
	flags.BoolVar(&c.twoPhase, "two-phase", false, "Keep a change in memory only after it was persisted")
	flags.BoolVar(&c.versioning, "versioning", false, "Commit every change to git (fs adapter)")
	flags.BoolVar(&c.readOnly, "read-only", false, "Reject every change")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newInitCmd(c),
		newAddCmd(c),
		newListCmd(c),
		newShowCmd(c),
		newEditCmd(c),
		newDeleteCmd(c),
		newTagCmd(c),
		newCommentCmd(c),
		newColorsCmd(),
		newWatchCmd(c),
		newHistoryCmd(c),
		newStatusCmd(c),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolveDir picks the data directory: --dir, then $JOTTER_DIR, then the
// nearest directory marked as a jotter root, then the working directory.
func (c *cli) resolveDir() (string, error) {
	if c.dir != "" {
		return c.dir, nil
	}
	if env := os.Getenv(envDir); env != "" {
		return env, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if root, err := jotter.FindRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// options merges jotter.yaml with the flags that were set explicitly.
func (c *cli) options(cmd *cobra.Command, dir string) ([]jotter.Option, error) {
	cfg, err := jotter.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	opts := append(cfg.Options(), jotter.WithLogger(c.logger))
	flags := cmd.Flags()
	if flags.Changed("adapter") || cfg.Adapter == "" {
		opts = append(opts, jotter.WithAdapter(c.adapter))
	}
	if flags.Changed("format") || cfg.Format == "" {
		opts = append(opts, jotter.WithFormat(c.format))
	}
	if flags.Changed("two-phase") {
		opts = append(opts, jotter.WithTwoPhase(c.twoPhase))
	}
	if flags.Changed("versioning") {
		opts = append(opts, jotter.WithVersioning(c.versioning))
	}
	if flags.Changed("read-only") {
		opts = append(opts, jotter.WithReadOnly(c.readOnly))
	}
	return opts, nil
}

// open builds the store for the current invocation.
func (c *cli) open(cmd *cobra.Command) (*jotter.Store, error) {
	dir, err := c.resolveDir()
	if err != nil {
		return nil, err
	}
	opts, err := c.options(cmd, dir)
	if err != nil {
		return nil, err
	}

	store, err := jotter.Open(c.context(cmd), dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes in %s: %w", dir, err)
	}
	return store, nil
}

// context returns the command context carrying the --message change reason.
func (c *cli) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.message != "" {
		ctx = jotter.WithChangeReason(ctx, c.message)
	}
	return ctx
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, core.Validation(fmt.Sprintf("invalid id %q", s))
	}
	return id, nil
}

// saveError explains a failed write. The in-memory change dies with the
// process, so for the CLI a persistence failure means nothing was saved.
func saveError(err error) error {
	if errors.Is(err, core.ErrPersistence) {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return err
}
