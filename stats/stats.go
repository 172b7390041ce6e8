// Package stats reports, for a medium about to be compressed, how the code
// tree distributes codewords over its alphabet and what that costs in bits.
// The report is exportable as CSV for eyeballing compression behavior across
// corpora.
package stats

import (
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/rmarchant/bitpress"
	"github.com/rmarchant/bitpress/adapters"
	"github.com/rmarchant/bitpress/prefixcode"
)

// Row describes one alphabet symbol: how often it occurs, the codeword it
// was assigned, and its total bit cost across the stream.
type Row struct {
	Symbol    string `csv:"symbol"`
	Count     int    `csv:"count"`
	Codeword  string `csv:"codeword"`
	CodeBits  int    `csv:"code_bits"`
	TotalBits int    `csv:"total_bits"`
}

// Report is the full per-medium summary.
type Report struct {
	Rows []Row
	// SymbolCount is the length of the symbol stream.
	SymbolCount int
	// EncodedBits is the packed payload size the stream encodes to.
	EncodedBits int
	// OriginalBytes is the size of the medium on disk.
	OriginalBytes int
}

// Analyze projects the medium at sourcePath onto symbols with the adapter
// for the given kind, builds the same tree and table a compress call would,
// and tallies the result. Rows are sorted by descending count, ties by
// symbol.
func Analyze(sourcePath string, kind bitpress.MediaKind) (*Report, error) {
	adapter, err := adapters.ForKind(kind)
	if err != nil {
		return nil, err
	}

	media, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bitpress.ErrNotFound.Wrap(err)
		}
		return nil, bitpress.ErrInvalidArgument.Wrap(err)
	}

	symbols, _, err := adapter.ToSymbols(media)
	if err != nil {
		return nil, err
	}

	root, err := prefixcode.Build(symbols)
	if err != nil {
		return nil, err
	}
	table := prefixcode.Derive(root)

	counts := make(map[bitpress.Symbol]int, len(table))
	for _, symbol := range symbols {
		counts[symbol]++
	}

	report := &Report{
		Rows:          make([]Row, 0, len(table)),
		SymbolCount:   len(symbols),
		OriginalBytes: len(media),
	}
	for symbol, codeword := range table {
		count := counts[symbol]
		row := Row{
			Symbol:    strconv.QuoteRune(symbol),
			Count:     count,
			Codeword:  codeword,
			CodeBits:  len(codeword),
			TotalBits: count * len(codeword),
		}
		report.EncodedBits += row.TotalBits
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Count != report.Rows[j].Count {
			return report.Rows[i].Count > report.Rows[j].Count
		}
		return report.Rows[i].Symbol < report.Rows[j].Symbol
	})
	return report, nil
}

// WriteCSV emits the per-symbol rows as CSV, header row included.
func (report *Report) WriteCSV(output io.Writer) error {
	return gocsv.Marshal(report.Rows, output)
}
