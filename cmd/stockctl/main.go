// Command stockctl works on the catalog without the web server: it exports,
// imports and lists products straight from the configured storage.
//
//	stockctl [--env-file .env] [--driver bolt] [--path data/stock.db] <command> [flags]
//
// Commands:
//
//	export [-o file]        write the catalog as CSV (stdout by default)
//	import <file>           merge a CSV file into the catalog
//	list [--status s] [-q term] [--sort key] [--desc]
//
// Log lines go to stderr so export output can be piped.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/JonMunkholm/stockroom/internal/config"
	"github.com/JonMunkholm/stockroom/internal/core"
	"github.com/JonMunkholm/stockroom/internal/logging"
	"github.com/JonMunkholm/stockroom/internal/storage"
)

const usage = `usage: stockctl [global flags] <command> [flags]

commands:
  export   write the catalog as CSV
  import   merge a CSV file into the catalog
  list     print the catalog as a table
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("stockctl", pflag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	envFile := global.String("env-file", ".env", "dotenv file to load")
	driver := global.String("driver", "", "storage driver (bolt, postgres, memory); overrides STORAGE_DRIVER")
	path := global.String("path", "", "bbolt file; overrides STORAGE_PATH")
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	// A missing .env is normal for the CLI
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *driver != "" {
		cfg.Storage.Driver = *driver
	}
	if *path != "" {
		cfg.Storage.Path = *path
	}
	slog.SetDefault(logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format))

	cmd, rest := global.Arg(0), global.Args()[1:]
	var fn func(context.Context, *core.Store, []string, io.Writer) error
	switch cmd {
	case "export":
		fn = runExport
	case "import":
		fn = runImport
	case "list":
		fn = runList
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		global.Usage()
		return 2
	}

	kv, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Storage.Driver,
		Path:        cfg.Storage.Path,
		DatabaseURL: cfg.Storage.DatabaseURL,
		MaxConns:    cfg.Storage.MaxConns,
	})
	if err != nil {
		fmt.Fprintln(stderr, "open storage:", err)
		return 1
	}
	defer kv.Close()

	store, err := core.OpenStore(ctx, kv, core.StoreOptions{Key: cfg.Storage.Key, Seed: cfg.Catalog.Seed})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if err := fn(ctx, store, rest, stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, core.FormatUserError(err))
		slog.Debug("command failed", "command", cmd, "error", err)
		return 1
	}
	return 0
}

func runExport(_ context.Context, store *core.Store, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	out := fs.StringP("output", "o", "", "write to file instead of stdout; \"auto\" uses stock_YYYY-MM-DD.csv")
	if err := fs.Parse(args); err != nil {
		return err
	}

	name := *out
	if name == "auto" {
		name = core.ExportFileName(time.Now())
	}
	if name == "" {
		return store.Export(stdout)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := store.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported %d products to %s\n", store.Len(), name)
	return nil
}

func runImport(ctx context.Context, store *core.Store, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("import", pflag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("no file provided: usage: stockctl import <file.csv>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := store.Import(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d rows: %d added, %d updated\n", res.Rows, res.Added, res.Updated)
	return nil
}

func runList(_ context.Context, store *core.Store, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	status := fs.String("status", "", "low, zero or ok")
	search := fs.StringP("search", "q", "", "filter by name, barcode or supplier")
	category := fs.String("category", "", "exact category")
	supplier := fs.String("supplier", "", "exact supplier")
	sortKey := fs.String("sort", "name", "sort key")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir := "asc"
	if *desc {
		dir = "desc"
	}
	products := store.Query(core.Query{
		Filters: core.Filters{
			Search:   *search,
			Category: core.ParseValueFilter(*category),
			Supplier: core.ParseValueFilter(*supplier),
			Status:   core.ParseStatusFilter(*status),
		},
		Sort: core.ParseSort(*sortKey, dir),
	})

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BARCODE\tNAME\tCATEGORY\tSUPPLIER\tPRICE\tSTOCK\tMIN\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%d\t%d\t%s\n",
			p.Barcode, p.Name, p.Category, p.Supplier, p.Price, p.Stock, p.MinStock, p.Status())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%d of %d products\n", len(products), store.Len())
	return nil
}
