package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/Clau791/Drive-search-with-AI-extended/internal/config"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/drive"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/embedder"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/extractor"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/store"
	"github.com/Clau791/Drive-search-with-AI-extended/internal/syncer"
)

var (
	configPath = flag.String("config", "", "Path to config.yaml (default: ./config.yaml, then ~/.config/drivesearch/config.yaml)")
	dryRun     = flag.Bool("dry-run", false, "Report the diff against Drive without re-indexing anything")
	prune      = flag.Bool("prune", false, "Also remove indexed documents that no longer exist in Drive")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	_ = godotenv.Load()

	var cfg *config.AppConfig
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, _, err = config.LoadDefault()
	}
	if err != nil {
		fatal("load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, finishing current document...")
		cancel()
	}()

	st := store.New(cfg.Store.Path)
	if err := st.Load(); err != nil {
		fatal("load embedding store: %v", err)
	}

	keyFile := cfg.Drive.CredentialsFile
	if keyFile == "" {
		keyFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	dc, err := drive.NewServiceAccountClient(ctx, keyFile)
	if err != nil {
		fatal("initialize Drive client: %v", err)
	}

	emb, err := newEmbedder(cfg.Embedder)
	if err != nil {
		fatal("initialize embedder: %v", err)
	}
	defer func() { _ = emb.Close() }()

	sy := syncer.New(dc, st, emb, extractor.NewPlain(), &syncer.Config{
		MimeType: cfg.Drive.MimeType,
		PageSize: cfg.Drive.PageSize,
		Workers:  cfg.Sync.Workers,
	})

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%s %s\n", bold("Embedding store:"), cfg.Store.Path)
	fmt.Printf("%s %s (%s, %d dims)\n", bold("Embedder:"), emb.Provider(), emb.Model(), emb.Dimension())

	if *dryRun {
		report, err := sy.Reconcile(ctx)
		if err != nil {
			fatal("reconcile: %v", err)
		}
		fmt.Printf("%s %d in Drive, %d indexed\n", bold("Diff:"), report.RemoteCount, report.LocalCount)
		fmt.Printf("  missing:  %d\n", len(report.Missing))
		fmt.Printf("  modified: %d\n", len(report.Modified))
		fmt.Printf("  extra:    %d\n", len(report.Extra))
		if report.InSync {
			fmt.Println(green("Index is in sync."))
		} else {
			fmt.Println(yellow("Index is out of sync, run without -dry-run to update."))
		}
		return
	}

	// Guard against a second sync job racing this one on the same store.
	fileLock := syncer.NewFileLock(cfg.Store.Path)
	acquired, err := fileLock.TryLock()
	if err != nil {
		fatal("%v", err)
	}
	if !acquired {
		fatal("another sync job is already running against %s", cfg.Store.Path)
	}
	defer func() { _ = fileLock.Unlock() }()

	fmt.Println("Reconciling index with Drive...")
	result, err := sy.SyncIfNeeded(ctx)
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			fatal("another sync is already running")
		}
		fatal("sync: %v", err)
	}

	fmt.Printf("%s\n", bold("Sync complete"))
	fmt.Printf("  in Drive:        %d\n", result.TotalRemote)
	fmt.Printf("  indexed:         %d\n", result.TotalIndexed)
	fmt.Printf("  newly processed: %s\n", green(fmt.Sprintf("%d", result.NewlyProcessed)))
	fmt.Printf("  duration:        %s\n", result.Duration.Round(10*time.Millisecond))

	if result.ErrorCount > 0 {
		fmt.Printf("  errors:          %s\n", red(fmt.Sprintf("%d", result.ErrorCount)))
		for _, detail := range result.ErrorDetails {
			fmt.Printf("    %s\n", red(detail))
		}
	}

	if *prune {
		removed, err := sy.PruneExtra(ctx)
		if err != nil {
			fatal("prune: %v", err)
		}
		if len(removed) > 0 {
			fmt.Printf("  pruned:          %s\n", yellow(fmt.Sprintf("%d", len(removed))))
			for _, id := range removed {
				fmt.Printf("    %s\n", yellow(id))
			}
		}
	} else if len(result.ExtraLocal) > 0 {
		fmt.Printf("  extra (kept):    %d, run with -prune to remove\n", len(result.ExtraLocal))
	}
}

// newEmbedder honors the configured provider and model; an empty provider
// defers the choice to the environment.
func newEmbedder(cfg config.EmbedderConfig) (embedder.Embedder, error) {
	if cfg.Provider == "" {
		return embedder.NewFromEnv()
	}
	return embedder.New(embedder.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
	})
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
