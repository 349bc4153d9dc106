package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/envelope-zero/wallet/internal/types"
	"github.com/envelope-zero/wallet/pkg/importer"
	"github.com/envelope-zero/wallet/pkg/importer/parser/localstorage"
	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/shopspring/decimal"
)

// parseMonth parses a month argument, the empty month is not allowed.
func parseMonth(s string) (types.Month, error) {
	month, err := models.ParseMonth(s)
	if err != nil {
		return types.Month{}, err
	}

	if month.IsZero() {
		return types.Month{}, models.ErrMonthInvalid
	}

	return month, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", models.ErrValidation, s)
	}

	return d, nil
}

type monthsCmd struct{}

func (monthsCmd) Run(g *globals) error {
	return g.printer.Summaries(g.out, g.session.Budgets())
}

type monthCmd struct {
	Add   monthAddCmd   `cmd:"" help:"Create the budget for a month."`
	Limit monthLimitCmd `cmd:"" help:"Set the budget limit for a month."`
	Show  monthShowCmd  `cmd:"" help:"Show the budget of a month."`
}

type monthAddCmd struct {
	Month string `arg:"" help:"The month in YYYY-MM format."`
}

func (c monthAddCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	if !g.session.AddMonth(g.ctx, month) {
		fmt.Fprintf(g.out, "month %s exists already\n", month)
		return nil
	}

	fmt.Fprintf(g.out, "created month %s\n", month)
	return nil
}

type monthLimitCmd struct {
	Month string `arg:"" help:"The month in YYYY-MM format."`
	Limit string `arg:"" help:"The new limit."`
}

func (c monthLimitCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	limit, err := parseAmount(c.Limit)
	if err != nil {
		return err
	}

	summary, err := g.session.SetLimit(g.ctx, month, limit)
	if err != nil {
		return err
	}

	return g.printer.Summaries(g.out, []models.Summary{summary})
}

type monthShowCmd struct {
	Month string `arg:"" help:"The month in YYYY-MM format."`
}

func (c monthShowCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	summary, err := g.session.Summary(month)
	if err != nil {
		return err
	}

	if err := g.printer.Summaries(g.out, []models.Summary{summary}); err != nil {
		return err
	}

	switch {
	case summary.OverBudget:
		fmt.Fprintln(g.out, "You are over budget!")
	case summary.FullySpent:
		fmt.Fprintln(g.out, "You have spent your whole budget.")
	}

	return nil
}

type txCmd struct {
	Add  txAddCmd  `cmd:"" help:"Add a transaction."`
	List txListCmd `cmd:"" help:"List the transactions of a month."`
}

type txAddCmd struct {
	Month    string `arg:"" help:"The month in YYYY-MM format."`
	Category string `arg:"" help:"The category, use Others together with --custom for a new one."`
	Amount   string `arg:"" help:"The amount spent."`
	Custom   string `help:"The custom category when the category is Others."`
}

func (c txAddCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	amount, err := parseAmount(c.Amount)
	if err != nil {
		return err
	}

	t, err := g.session.AddTransaction(g.ctx, month, c.Category, c.Custom, amount)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.out, "added %s for %s, %s remaining in %s\n", g.printer.Amount(t.Amount), t.Category, g.printer.Amount(g.session.Remaining(month)), month)
	return nil
}

type txListCmd struct {
	Month string `arg:"" help:"The month in YYYY-MM format."`
}

func (c txListCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	transactions, err := g.session.Transactions(month)
	if err != nil {
		return err
	}

	return g.printer.Transactions(g.out, transactions)
}

type categoriesCmd struct{}

func (categoriesCmd) Run(g *globals) error {
	for _, c := range g.session.Categories() {
		fmt.Fprintln(g.out, c)
	}

	return nil
}

type categoryCmd struct {
	Add categoryAddCmd `cmd:"" help:"Add a custom category."`
}

type categoryAddCmd struct {
	Label string `arg:"" help:"Name of the category."`
}

func (c categoryAddCmd) Run(g *globals) error {
	if !g.session.AddCustomCategory(g.ctx, c.Label) {
		return fmt.Errorf("%w: category %q is blank or exists already", models.ErrValidation, c.Label)
	}

	fmt.Fprintf(g.out, "added category %s\n", c.Label)
	return nil
}

type breakdownCmd struct {
	Month string `arg:"" help:"The month in YYYY-MM format."`
}

func (c breakdownCmd) Run(g *globals) error {
	month, err := parseMonth(c.Month)
	if err != nil {
		return err
	}

	series, err := g.session.Series(month)
	if err != nil {
		return err
	}

	return g.printer.Series(g.out, series)
}

type importCmd struct {
	File string `arg:"" help:"The exported file."`
}

func (c importCmd) Run(g *globals) error {
	if !importer.ValidFilename(filepath.Base(c.File)) {
		return fmt.Errorf("only files matching %s can be imported", importer.FilePattern)
	}

	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	snap, err := localstorage.Parse(f)
	if err != nil {
		return err
	}

	g.session.Restore(g.ctx, snap)
	fmt.Fprintf(g.out, "imported %d months and %d transactions\n", len(snap.Budgets), len(snap.Transactions))
	return nil
}
