// Package tabular reads the CSV and Excel inputs of an analysis run and
// binds them to domain records. Malformed rows are skipped and logged; schema
// problems are fatal for the whole file.
package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"matchlens/domain/core"
)

// table is a parsed input file: a header row plus data rows, all as strings.
type table struct {
	path   string
	header []string
	rows   [][]string
}

// readTable loads a tabular file, dispatching on extension the same way for
// every input: .csv through encoding/csv, anything else through excelize
// Sheet1.
func readTable(path string) (*table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", path)
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, core.NewSchemaError(path, "missing header row")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.ToLower(h))
	}

	log.Printf("[TabularReader] %s: %d data rows", path, len(rows)-1)
	return &table{path: path, header: header, rows: rows[1:]}, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Ragged rows are a per-row problem, not a file-level one.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file %s: %w", path, err)
	}
	return records, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1 of %s: %w", path, err)
	}
	return rows, nil
}

// requireColumns checks that the header contains every expected column and
// returns the column index of each. Extra columns are tolerated.
func (t *table) requireColumns(names []string) (map[string]int, error) {
	index := make(map[string]int, len(t.header))
	for i, h := range t.header {
		index[h] = i
	}

	cols := make(map[string]int, len(names))
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			return nil, core.NewSchemaError(t.path, fmt.Sprintf("missing column %q", name))
		}
		cols[name] = i
	}
	return cols, nil
}

// cell returns the trimmed value at column i, tolerating rows that Excel
// truncates at the last non-empty cell.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFlag(value string) (bool, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return false, fmt.Errorf("expected 0/1 indicator, got %q", value)
	}
	return n != 0, nil
}

func parseCount(value string) (uint, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("expected population count, got %q", value)
	}
	return uint(n), nil
}
