package regions

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"lga-distance/internal/domain"
	"lga-distance/internal/platform/obs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileRegionLoader implements RegionLoader for CSV and XLSX files.
//
// Rows that fail to parse are skipped. They are counted in the returned
// RegionSet and logged at debug level, nothing more.
type FileRegionLoader struct {
	logger *zap.Logger
}

func NewFileRegionLoader(logger *zap.Logger) *FileRegionLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileRegionLoader{logger: logger}
}

// Load regions in input order, applying the state filter before parsing.
func (l *FileRegionLoader) LoadRegions(
	ctx context.Context,
	path string,
	stateFilter string,
) (_ *domain.RegionSet, err error) {
	defer obs.Time(ctx, l.logger, "regions.LoadRegions")(&err)

	if strings.TrimSpace(path) == "" {
		return nil, errors.New("load regions: path must be non-empty")
	}

	var records [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readXLSX(path)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load regions: %w", err)
	}

	set := &domain.RegionSet{Regions: []domain.Region{}}
	if len(records) == 0 {
		return set, nil
	}

	cols := indexHeader(records[0])
	for i, record := range records[1:] {
		if !cols.keep(record, stateFilter) {
			continue
		}

		region, err := cols.parseRegion(record)
		if err != nil {
			set.Dropped++
			l.logger.Debug("region row dropped", zap.Int("row", i+2), zap.Error(err))
			continue
		}
		set.Regions = append(set.Regions, region)
	}

	return set, nil
}

// readCSV reads every record of a CSV file, skipping a leading byte-order mark.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv %q: %w", path, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// readXLSX reads the first sheet of a workbook. Cells are read as stored,
// not as displayed, so number formats never round or group digits.
// Rows are padded to the header width because spreadsheets drop trailing
// empty cells.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %q: %w", sheet, path, err)
	}

	if len(rows) == 0 {
		return rows, nil
	}

	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}

	return rows, nil
}
