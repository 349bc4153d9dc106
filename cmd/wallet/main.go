// Command wallet manages the monthly budgets from the command line. It
// uses the same configuration and storage as the server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/envelope-zero/wallet/internal/config"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/rs/zerolog"
)

// cli commands / args available
type cli struct {
	Months     monthsCmd     `cmd:"" help:"List the budgets of all months."`
	Month      monthCmd      `cmd:"" help:"Manage the budget of a month."`
	Tx         txCmd         `cmd:"" help:"Manage transactions."`
	Categories categoriesCmd `cmd:"" help:"List all categories."`
	Category   categoryCmd   `cmd:"" help:"Manage categories."`
	Breakdown  breakdownCmd  `cmd:"" help:"Show the spending per category for a month."`
	Import     importCmd     `cmd:"" help:"Replace all data with an export of the browser version."`
}

// globals is passed to every command.
type globals struct {
	ctx     context.Context
	session *models.Session
	out     io.Writer
	printer printer
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "wallet:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("wallet"),
		kong.Description("Keep track of your monthly budget."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Only problems are logged, the output is for the user
	cfg.ConfigureLogging(stderr)
	if zerolog.GlobalLevel() < zerolog.WarnLevel {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	adapter, closeStorage, err := cfg.OpenStorage()
	if err != nil {
		return err
	}
	defer closeStorage()

	session := models.NewSession(models.WithAdapter(adapter))
	if err := session.Load(ctx); err != nil {
		return err
	}

	return kctx.Run(&globals{
		ctx:     ctx,
		session: session,
		out:     stdout,
		printer: newPrinter(cfg.Unit()),
	})
}
