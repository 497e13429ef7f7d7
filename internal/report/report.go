package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatJSON, FormatCSV, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Write renders quotes to w in the given format.
func Write(w io.Writer, f Format, quotes ...Quote) error {
	switch f {
	case FormatTable:
		return WriteTable(w, quotes...)
	case FormatJSON:
		return WriteJSON(w, quotes...)
	case FormatCSV:
		return WriteCSV(w, quotes...)
	case FormatYAML:
		return WriteYAML(w, quotes...)
	}
	return fmt.Errorf("%q: %w", string(f), ErrUnknownFormat)
}

// WriteTable renders a human-readable table with amounts in dollars.
func WriteTable(w io.Writer, quotes ...Quote) error {
	p := message.NewPrinter(language.English)
	dollars := func(v float64) string { return fmt.Sprintf("$%s", p.Sprintf("%.2f", v)) }
	percent := func(v float64) string { return p.Sprintf("%.2f%%", v*100) }

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Option", "Strike", "Rate", "Maturity (y)", "Spot", "Sigma", "Call", "Put"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)

	for _, q := range quotes {
		call, put := "-", "-"
		if q.Call != nil {
			call = dollars(q.Call.InexactFloat64())
		}
		if q.Put != nil {
			put = dollars(q.Put.InexactFloat64())
		}

		table.Append([]string{
			q.Label,
			dollars(q.Params.Strike),
			percent(q.Params.Rate),
			p.Sprintf("%.2f", q.Params.Maturity),
			dollars(q.Params.Spot),
			percent(q.Params.Sigma),
			call,
			put,
		})
	}

	table.Render()
	return nil
}

func WriteJSON(w io.Writer, quotes ...Quote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows(quotes))
}

func WriteCSV(w io.Writer, quotes ...Quote) error {
	r := rows(quotes)
	return gocsv.Marshal(&r, w)
}

func WriteYAML(w io.Writer, quotes ...Quote) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows(quotes)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFiles writes quote.json and quote.csv into outdir, creating it if needed.
func WriteFiles(outdir string, quotes ...Quote) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer, ...Quote) error
	}{
		{"quote.json", WriteJSON},
		{"quote.csv", WriteCSV},
	}

	for _, file := range files {
		if err := writeFile(filepath.Join(outdir, file.name), file.write, quotes); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer, ...Quote) error, quotes []Quote) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f, quotes...); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
