package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wonny/fundquant/internal/ledger"
)

// File names produced by WriteAll.
const (
	BuysFile      = "buys.csv"
	SellsFile     = "sells.csv"
	PositionsFile = "positions.csv"
	SummaryFile   = "summary.csv"
)

// WriteAccumulation writes one trade history (buys or sells) as CSV,
// one row per delta, followed by a total row.
func WriteAccumulation(w io.Writer, acc *ledger.Accumulation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "net_value", "equity", "amount"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, d := range acc.Histories {
		row := []string{d.Date, d.NetValue.String(), d.Equity.String(), d.Amount.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write delta row: %w", err)
		}
	}
	total := []string{"total", acc.AverageValue().String(), acc.Equity.String(), acc.Amount.String()}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("write total row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WritePositions writes the daily settlement history as CSV, one row
// per settled trading day.
func WritePositions(w io.Writer, record *ledger.ProfitRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "net_value", "equity", "amount", "cost", "profit", "profit_rate"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range record.Histories {
		row := []string{
			s.Date,
			s.NetValue.String(),
			s.Equity.String(),
			s.Amount().String(),
			s.Cost.String(),
			s.Profit().String(),
			s.ProfitRate().String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write position row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummary writes the aggregate summary: the five accumulation
// dimensions, then the profit breakdown.
func WriteSummary(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"dimension", "equity", "amount", "average_value"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range s.Rows {
		row := []string{r.Dimension, r.Equity.String(), r.Amount.String(), r.AverageValue.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	if err := cw.Write([]string{"source", "profit", "profit_rate", ""}); err != nil {
		return fmt.Errorf("write breakdown header: %w", err)
	}
	breakdown := [][]string{
		{"strategy", s.StrategyProfit.String(), s.StrategyRate.String(), ""},
		{"regular", s.RegularProfit.String(), s.RegularRate.String(), ""},
		{"fund_change", s.FundChangeProfit.String(), s.FundChangeRate.String(), ""},
	}
	for _, row := range breakdown {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write breakdown row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAll renders the full report set for a finished run into dir,
// creating it if needed.
func WriteAll(dir string, record *ledger.ProfitRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{BuysFile, func(w io.Writer) error { return WriteAccumulation(w, record.AccBuy) }},
		{SellsFile, func(w io.Writer) error { return WriteAccumulation(w, record.AccSell) }},
		{PositionsFile, func(w io.Writer) error { return WritePositions(w, record) }},
		{SummaryFile, func(w io.Writer) error { return WriteSummary(w, NewSummary(record)) }},
	}
	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
