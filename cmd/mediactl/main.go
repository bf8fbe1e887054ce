// mediactl moves media between storage tiers.
//
//	mediactl promote     [--dry-run] [--batch-size 50] [--entity project ...]
//	mediactl clear-blobs [--dry-run] [--confirm] [--verify] [--verify-timeout 5s] [--batch-size 500]
//
// clear-blobs only counts unless --confirm is given; --dry-run wins over --confirm.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio_backend/database"
	"portfolio_backend/internal/app"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/migration"
	"portfolio_backend/internal/storage"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type entityList []string

func (l *entityList) String() string { return strings.Join(*l, ",") }
func (l *entityList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.InitWithWriter(cfg.Server.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mediactl <promote|clear-blobs> [flags]")
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "promote":
		return runPromote(ctx, cfg, args[1:], stdout, stderr)
	case "clear-blobs":
		return runClearBlobs(ctx, cfg, args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func runPromote(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("promote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dryRun := fs.Bool("dry-run", false, "report what would be copied without writing")
	batchSize := fs.Int("batch-size", cfg.Migration.PromoteBatchSize, "rows fetched per query")
	var entities entityList
	fs.Var(&entities, "entity", "restrict to one entity tag (repeatable)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *batchSize <= 0 {
		fmt.Fprintln(stderr, "--batch-size must be positive")
		return exitUsage
	}

	deps, code := connect(cfg, stderr)
	if deps == nil {
		return code
	}

	ctx = logger.WithJobID(ctx, jobID("promote"))
	logger.CtxInfo(ctx, "promote started", "dry_run", *dryRun, "batch_size", *batchSize, "entities", entities.String())

	report, err := migration.NewPromoter(deps.db, deps.store).Run(ctx, migration.PromoteOptions{
		DryRun:    *dryRun,
		BatchSize: *batchSize,
		Entities:  entities,
	})
	if report != nil {
		for _, s := range report.Slots {
			fmt.Fprintf(stdout, "%-32s total=%d migrated=%d skipped=%d failed=%d\n",
				s.Slot, s.Total, s.Migrated, s.Skipped, s.Failed)
		}
		fmt.Fprintf(stdout, "TOTAL migrated=%d skipped=%d failed=%d\n", report.Migrated(), report.Skipped(), report.Failed())
		if report.DryRun {
			fmt.Fprintln(stdout, "Dry-run: nothing was written.")
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "promote: %v\n", err)
		return exitFailure
	}
	if slotErrs := report.Errors(); len(slotErrs) > 0 {
		for _, slotErr := range slotErrs {
			fmt.Fprintf(stderr, "promote: %v\n", slotErr)
		}
		return exitFailure
	}
	if report.Failed() > 0 {
		return exitFailure
	}
	return exitOK
}

func runClearBlobs(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clear-blobs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dryRun := fs.Bool("dry-run", false, "only count eligible rows (default unless --confirm)")
	confirm := fs.Bool("confirm", false, "actually clear the blobs")
	verify := fs.Bool("verify", false, "check the stored file exists before clearing")
	verifyTimeout := fs.Duration("verify-timeout", cfg.Migration.VerifyTimeout, "timeout of one existence check")
	batchSize := fs.Int("batch-size", cfg.Migration.DemoteBatchSize, "rows per batch and transaction")
	var entities entityList
	fs.Var(&entities, "entity", "restrict to one entity tag (repeatable)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *batchSize <= 0 || *verifyTimeout <= 0 {
		fmt.Fprintln(stderr, "--batch-size and --verify-timeout must be positive")
		return exitUsage
	}

	deps, code := connect(cfg, stderr)
	if deps == nil {
		return code
	}

	ctx = logger.WithJobID(ctx, jobID("clear-blobs"))
	logger.CtxInfo(ctx, "clear-blobs started", "confirm", *confirm && !*dryRun, "verify", *verify, "batch_size", *batchSize)

	report, err := migration.NewDemoter(deps.db, deps.store).Run(ctx, migration.DemoteOptions{
		Confirm:       *confirm && !*dryRun,
		Verify:        *verify,
		VerifyTimeout: *verifyTimeout,
		BatchSize:     *batchSize,
		Entities:      entities,
	})
	if report != nil {
		for _, s := range report.Slots {
			fmt.Fprintf(stdout, "%-32s eligible=%d cleared=%d skipped=%d failed=%d\n",
				s.Slot, s.Candidates-s.Skipped, s.Cleared, s.Skipped, s.Failed)
		}
		fmt.Fprintf(stdout, "TOTAL candidates=%d cleared=%d skipped=%d failed=%d\n",
			report.Candidates(), report.Cleared(), report.Skipped(), report.Failed())
		if report.DryRun {
			fmt.Fprintln(stdout, "Dry-run (no changes made). Re-run with --confirm to apply changes.")
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "clear-blobs: %v\n", err)
		return exitFailure
	}
	if slotErrs := report.Errors(); len(slotErrs) > 0 {
		for _, slotErr := range slotErrs {
			fmt.Fprintf(stderr, "clear-blobs: %v\n", slotErr)
		}
		return exitFailure
	}
	if report.Failed() > 0 {
		return exitFailure
	}
	return exitOK
}

type dependencies struct {
	db    *gorm.DB
	store storage.Storage
}

func connect(cfg *config.Config, stderr io.Writer) (*dependencies, int) {
	db, err := database.Connect(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "database: %v\n", err)
		return nil, exitFailure
	}
	store, err := app.NewStorage(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "storage: %v\n", err)
		return nil, exitFailure
	}
	if store == nil {
		logger.Warn("no storage backend configured", "type", cfg.Storage.Type)
	}
	return &dependencies{db: db, store: store}, exitOK
}

func jobID(command string) string {
	return command + "-" + uuid.NewString()[:8]
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}
