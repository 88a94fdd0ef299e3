// Command import loads stars or country genitive names from an .xlsx workbook.
//
//	import -stars stars.xlsx [-update]
//	import -countries countries.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"borntoday-backend/internal/domains/star/service"
	"borntoday-backend/pkg/container"
	"borntoday-backend/pkg/logger"
)

type options struct {
	starsFile     string
	countriesFile string
	update        bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.StringVar(&opts.starsFile, "stars", "", "workbook with columns Name, Country, Categories, Born, Txt")
	fs.StringVar(&opts.countriesFile, "countries", "", "workbook with columns Country, Country-2")
	fs.BoolVar(&opts.update, "update", false, "update stars whose name already exists instead of skipping them")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.starsFile == "" && opts.countriesFile == "":
		return opts, errors.New("one of -stars or -countries is required")
	case opts.starsFile != "" && opts.countriesFile != "":
		return opts, errors.New("-stars and -countries are mutually exclusive")
	case opts.update && opts.starsFile == "":
		return opts, errors.New("-update only applies to -stars")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	c, err := container.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, c.ImportService, opts)
	stop()
	c.Cleanup()

	if err != nil {
		logger.Error("import failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, imports service.ImportService, opts options) error {
	if opts.starsFile != "" {
		f, err := os.Open(opts.starsFile)
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := imports.ImportStars(ctx, f, opts.update)
		if err != nil {
			return err
		}
		for _, d := range res.Details {
			fmt.Println(d)
		}
		fmt.Printf("created: %d, updated: %d, skipped: %d, errors: %d\n",
			res.Created, res.Updated, res.Skipped, res.Errors)
		return nil
	}

	f, err := os.Open(opts.countriesFile)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := imports.ImportCountryGenitives(ctx, f)
	if err != nil {
		return err
	}
	fmt.Printf("updated: %d, not found: %d\n", res.Updated, res.NotFound)
	return nil
}
