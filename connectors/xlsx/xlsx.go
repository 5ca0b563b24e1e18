// Package xlsx reads header-keyed records out of spreadsheet workbooks.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"hours-stats/domain/hours"

	"github.com/xuri/excelize/v2"
)

// Read parses a workbook from r and returns the rows of sheet keyed by the
// header row. An empty sheet name selects the first sheet. Cells are returned
// raw, so date cells come back as serial numbers.
func Read(r io.Reader, sheet string) ([]hours.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) ([]hours.Record, error) {
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toRecords(rows), nil
}

// toRecords uses the first non-blank row as headers. Blank rows are skipped and
// cells past the last header are ignored.
func toRecords(rows [][]string) []hours.Record {
	var headers []string
	res := []hours.Record{}
	for _, row := range rows {
		if blank(row) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i, h := range row {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}
		rec := make(hours.Record, len(headers))
		for j := 0; j < len(headers) && j < len(row); j++ {
			if headers[j] == "" {
				continue
			}
			rec[headers[j]] = row[j]
		}
		res = append(res, rec)
	}
	return res
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
