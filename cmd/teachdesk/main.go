package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmoiron/sqlx"

	"github.com/jask/teachdesk/core"
	"github.com/jask/teachdesk/internal/config"
	"github.com/jask/teachdesk/internal/database"
	"github.com/jask/teachdesk/internal/database/repository"
	"github.com/jask/teachdesk/internal/diag"
	"github.com/jask/teachdesk/internal/export"
	"github.com/jask/teachdesk/internal/listing"
	"github.com/jask/teachdesk/internal/model"
	"github.com/jask/teachdesk/screens"
	"github.com/jask/teachdesk/tabs"
)

var version = "dev"

const usage = `usage: teachdesk [command]

With no command the console starts.

commands:
  migrate                 apply pending schema migrations
  seed                    insert the sample dataset into an empty store
  reset                   delete every record, keeping the schema
  export <table> <file>   write a table to <file>; .pdf or .xlsx picks the format
  config                  write the effective configuration to the config file
`

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		if err := runConsole(ctx, cfg); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch args[0] {
	case "migrate":
		fs := flag.NewFlagSet("migrate", flag.ExitOnError)
		_ = fs.Parse(args[1:])
		if err := migrate(cfg); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		fmt.Println("migrations applied")
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		_ = fs.Parse(args[1:])
		db, err := openStore(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := database.SeedDefaults(ctx, db); err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Println("sample data ready")
	case "reset":
		fs := flag.NewFlagSet("reset", flag.ExitOnError)
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		_ = fs.Parse(args[1:])
		if !*yes {
			fmt.Fprintln(os.Stderr, "reset deletes every record; rerun with -yes to proceed")
			os.Exit(2)
		}
		db, err := openStore(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := database.Reset(ctx, db); err != nil {
			log.Fatalf("reset: %v", err)
		}
		fmt.Println("all records deleted")
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		_ = fs.Parse(args[1:])
		if fs.NArg() != 2 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		db, err := openStore(cfg)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		n, err := exportTable(ctx, cfg, repository.NewRecordRepo(db), fs.Arg(0), fs.Arg(1))
		if err != nil {
			log.Fatalf("export: %v", err)
		}
		fmt.Printf("wrote %d rows to %s\n", n, fs.Arg(1))
	case "config":
		if err := config.Save(cfg); err != nil {
			log.Fatalf("config: %v", err)
		}
		fmt.Println("config saved")
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runConsole(ctx context.Context, cfg config.Config) error {
	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			return fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := tea.LogToFile(cfg.Log.Path, "teachdesk")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
	}
	reporter := diag.New(log.Default(), cfg.Log, version)
	defer reporter.Close()

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Seed {
		if err := database.SeedDefaults(ctx, db); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
	}

	deps := tabs.Deps{
		Ctx:      ctx,
		Store:    repository.NewRecordRepo(db),
		Exporter: export.NewExporter(cfg.Export.Dir),
		Reporter: reporter,
		YesLabel: cfg.UI.YesLabel,
		NoLabel:  cfg.UI.NoLabel,
	}

	tables := model.All()
	all := []core.Tab{tabs.NewHomeTab(tables, deps)}
	for _, t := range tables {
		all = append(all, tabs.NewRecordsTab(t, deps))
	}

	m := core.NewModel("TeachDesk",
		all,
		core.NewKeyRegistry(core.DefaultKeyBindings(len(all))),
		core.NewCommandRegistry(tabs.Commands(tables)),
	)
	m.OpenCommandModal = screens.OpenCommandPalette

	reporter.Info("console started", map[string]any{"driver": cfg.Database.Driver, "version": version})
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func migrate(cfg config.Config) error {
	if cfg.Database.Driver != database.DriverPostgres {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	return database.RunMigrations(cfg.Database.Driver, cfg.Database.Source())
}

// openStore migrates then opens the configured store.
func openStore(cfg config.Config) (*sqlx.DB, error) {
	if err := migrate(cfg); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Driver, cfg.Database.Source())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func exportTable(ctx context.Context, cfg config.Config, store repository.Store, table, path string) (int, error) {
	t, ok := model.Lookup(table)
	if !ok {
		return 0, fmt.Errorf("unknown table %q (want one of %v)", table, model.Names())
	}
	format, err := export.ParseFormat(path)
	if err != nil {
		return 0, err
	}
	sheet, err := listing.LoadSheet(ctx, store, t, cfg.UI.YesLabel, cfg.UI.NoLabel)
	if err != nil {
		return 0, err
	}
	if err := export.WriteFile(path, sheet, format); err != nil {
		return 0, err
	}
	return len(sheet.Rows), nil
}
