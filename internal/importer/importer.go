package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"danishdeck/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Format is the layout of an uploaded phrase list
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Config defines which columns hold which phrase fields
type Config struct {
	DanishColumn   int  // 0-based index of the Danish text
	MeaningColumn  int  // 0-based index of the meaning
	CategoryColumn int  // 0-based index of the category, -1 when absent
	SkipHeader     bool // Skip the first row
	SheetName      string
}

// DefaultConfig returns the default import configuration: A=Danish, B=meaning, C=category
func DefaultConfig() Config {
	return Config{
		DanishColumn:   0,
		MeaningColumn:  1,
		CategoryColumn: 2,
		SkipHeader:     true,
	}
}

// FormatFromName picks the format from a file name extension
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Read parses phrase rows from r. Blank rows are dropped; rows with only one
// of the two texts are passed through so the caller can report them.
func Read(r io.Reader, format Format, cfg Config) ([]domain.PhraseInput, error) {
	var rows [][]string
	var err error

	switch format {
	case FormatXLSX:
		rows, err = readExcel(r, cfg.SheetName)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SkipHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	inputs := make([]domain.PhraseInput, 0, len(rows))
	for _, row := range rows {
		in := domain.PhraseInput{
			DanishText:  cell(row, cfg.DanishColumn),
			MeaningText: cell(row, cfg.MeaningColumn),
			Category:    cell(row, cfg.CategoryColumn),
		}
		if in.DanishText == "" && in.MeaningText == "" {
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readExcel(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
