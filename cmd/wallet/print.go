package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/envelope-zero/wallet/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats amounts in a currency.
type printer struct {
	p    *message.Printer
	unit currency.Unit
}

func newPrinter(unit currency.Unit) printer {
	return printer{
		p:    message.NewPrinter(language.English),
		unit: unit,
	}
}

// Amount formats an amount with the currency symbol, rounded to the
// number of digits the currency uses.
func (p printer) Amount(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(p.unit)
	return p.p.Sprint(currency.Symbol(p.unit)) + " " + d.StringFixed(int32(scale))
}

func (p printer) Summaries(w io.Writer, summaries []models.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MONTH\tLIMIT\tSPENT\tREMAINING\tSTATUS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.Month, p.Amount(s.Limit), p.Amount(s.Spent), p.Amount(s.Remaining), s.Status)
	}

	return tw.Flush()
}

func (p printer) Transactions(w io.Writer, transactions []models.Transaction) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCATEGORY\tAMOUNT\tID")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Date, t.Category, p.Amount(t.Amount), t.ID)
	}

	return tw.Flush()
}

func (p printer) Series(w io.Writer, series []models.Slice) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSPENT")
	for _, s := range series {
		fmt.Fprintf(tw, "%s\t%s\n", s.Label, p.Amount(s.Value))
	}

	return tw.Flush()
}
