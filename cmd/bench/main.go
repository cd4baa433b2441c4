// Command bench measures write-through cost per adapter: every mutation
// rewrites the whole collection, so create time grows with its size.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/jotter"
)

func main() {
	count := flag.Int("count", 500, "Number of notes to create")
	adapters := flag.String("adapters", "fs,sqlite,badger,memory", "Comma-separated adapters to benchmark")
	keep := flag.Bool("keep", false, "Keep the benchmark directories after running")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Printf("%-8s %12s %12s %12s\n", "ADAPTER", "CREATE", "PER NOTE", "RELOAD")
	for _, adapter := range strings.Split(*adapters, ",") {
		adapter = strings.TrimSpace(adapter)
		create, reload, err := run(adapter, *count, *keep, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", adapter, err)
			os.Exit(1)
		}
		fmt.Printf("%-8s %12v %12v %12v\n", adapter, create, create/time.Duration(*count), reload)
	}
}

func run(adapter string, count int, keep bool, logger *slog.Logger) (time.Duration, time.Duration, error) {
	dir, err := os.MkdirTemp("", "jotter_bench_")
	if err != nil {
		return 0, 0, err
	}
	if keep {
		fmt.Fprintf(os.Stderr, "keeping %s bench dir: %s\n", adapter, dir)
	} else {
		defer os.RemoveAll(dir)
	}

	ctx := context.Background()
	opts := []jotter.Option{
		jotter.WithAdapter(adapter),
		jotter.WithLogger(logger),
		// Measure storage cost, not git.
		jotter.WithVersioning(false),
	}

	store, err := jotter.Open(ctx, dir, opts...)
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		_, err := store.Create(ctx, jotter.Draft{
			Title:   fmt.Sprintf("Note %d", i),
			Content: "This is a benchmark note.",
			Tags:    []string{"benchmark", "test"},
		})
		if err != nil {
			return 0, 0, err
		}
	}
	create := time.Since(start)

	if adapter == jotter.AdapterMemory {
		// A new memory store starts empty; reload the same one.
		start = time.Now()
		store.LoadAll(ctx)
		return create, time.Since(start), store.Close()
	}
	if err := store.Close(); err != nil {
		return 0, 0, err
	}

	start = time.Now()
	reopened, err := jotter.Open(ctx, dir, opts...)
	if err != nil {
		return 0, 0, err
	}
	reload := time.Since(start)
	if reopened.Len() != count {
		return 0, 0, fmt.Errorf("reloaded %d notes, want %d", reopened.Len(), count)
	}
	return create, reload, reopened.Close()
}
