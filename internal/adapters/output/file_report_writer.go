package output

import (
	"encoding/csv"
	"fmt"
	"lga-distance/internal/domain"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// NotAvailable is written in place of a distance that could not be resolved.
const NotAvailable = "N/A"

// SummaryHeader is the single column of the summary table.
const SummaryHeader = "Population Weighted Average Distance"

var DetailHeader = []string{
	"State", "LGA", "Name", "Population", "Latitude", "Longitude", "Distance", "Population x Distance",
}

// FileReportWriter implements ReportWriter. Paths ending in .xlsx are written
// as workbooks, everything else as CSV. Tables are staged in a temporary file
// next to the target and renamed into place.
type FileReportWriter struct{}

func NewFileReportWriter() *FileReportWriter {
	return &FileReportWriter{}
}

// table is one rendered output file. numericFrom is the first column that
// holds numbers; it only matters for workbooks.
type table struct {
	name        string
	path        string
	records     [][]string
	numericFrom int
}

// State, LGA and Name stay text even when they look numeric.
func detailTable(path string, rows []domain.WeightedRow) table {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, DetailHeader)
	for _, row := range rows {
		records = append(records, detailRecord(row))
	}
	return table{name: "detail", path: path, records: records, numericFrom: 3}
}

func summaryTable(path string, report *domain.WeightedReport) table {
	return table{
		name: "summary",
		path: path,
		records: [][]string{
			{SummaryHeader},
			{report.WeightedAverage.String()},
		},
	}
}

// WriteReport writes the detail and the summary table. Neither file appears
// unless both were written.
func (w *FileReportWriter) WriteReport(detailPath, summaryPath string, report *domain.WeightedReport) error {
	if report == nil {
		return fmt.Errorf("write report: report is nil")
	}
	return writeTables(detailTable(detailPath, report.Rows), summaryTable(summaryPath, report))
}

// Write the detail table, one row per region in input order.
func (w *FileReportWriter) WriteDetail(path string, rows []domain.WeightedRow) error {
	return writeTables(detailTable(path, rows))
}

// Write the summary table: a header and the weighted average.
func (w *FileReportWriter) WriteSummary(path string, report *domain.WeightedReport) error {
	if report == nil {
		return fmt.Errorf("write summary table: report is nil")
	}
	return writeTables(summaryTable(path, report))
}

// writeTables stages every table first and renames them into place only
// when all of them were written.
func writeTables(tables ...table) error {
	staged := make([]string, 0, len(tables))
	defer func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}()

	for _, t := range tables {
		tmp, err := stageTable(t)
		if err != nil {
			return fmt.Errorf("write %s table: %w", t.name, err)
		}
		staged = append(staged, tmp)
	}

	for i, t := range tables {
		if err := os.Rename(staged[i], t.path); err != nil {
			return fmt.Errorf("write %s table: %w", t.name, err)
		}
	}
	return nil
}

// stageTable writes t to a hidden temporary file in the target directory
// and returns its path. The temporary name keeps the target's extension.
func stageTable(t table) (string, error) {
	if strings.TrimSpace(t.path) == "" {
		return "", fmt.Errorf("output path must be non-empty")
	}

	ext := filepath.Ext(t.path)
	stem := strings.TrimSuffix(filepath.Base(t.path), ext)
	f, err := os.CreateTemp(filepath.Dir(t.path), "."+stem+"-*"+ext)
	if err != nil {
		return "", fmt.Errorf("stage %q: %w", t.path, err)
	}
	tmp := f.Name()

	if strings.EqualFold(ext, ".xlsx") {
		f.Close()
		err = writeXLSX(tmp, t.records, t.numericFrom)
	} else {
		err = writeCSV(f, t.records)
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err != nil {
		os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

func detailRecord(row domain.WeightedRow) []string {
	r := row.Region
	distance, weighted := NotAvailable, NotAvailable
	if row.Available() {
		distance = row.Distance.String()
		weighted = row.PopulationXDistance.String()
	}

	return []string{
		r.State,
		r.LGA,
		r.Name,
		r.Population.String(),
		strconv.FormatFloat(r.Lat, 'f', -1, 64),
		strconv.FormatFloat(r.Lng, 'f', -1, 64),
		distance,
		weighted,
	}
}

// writeCSV writes records to f and closes it.
func writeCSV(f *os.File, records [][]string) error {
	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write csv %q: %w", f.Name(), err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", f.Name(), err)
	}
	return nil
}

// writeXLSX stores records on the first sheet. Data cells from column
// numericFrom on that parse as numbers are written as numbers.
func writeXLSX(path string, records [][]string, numericFrom int) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, record := range records {
		cells := make([]interface{}, 0, len(record))
		for j, v := range record {
			if i > 0 && j >= numericFrom {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cells = append(cells, n)
					continue
				}
			}
			cells = append(cells, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("set row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}
