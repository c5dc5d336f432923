package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds the rows read from a legacy workbook.
const maxXLSRows = 100000

// idHeaders are the normalized column headers recognized as the identifier column.
var idHeaders = map[string]struct{}{
	"id":             {},
	"employeeid":     {},
	"employee id":    {},
	"employee_id":    {},
	"الرقم الوظيفي": {},
	"رقم الموظف":     {},
}

// LoadIDs reads employee identifiers from a .xlsx, .xls or .csv file.
func LoadIDs(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImportError{Path: path, Message: "failed to open ID file", Cause: err}
	}
	defer f.Close()

	ids, err := ReadIDs(f, filepath.Base(path))
	if err != nil {
		return nil, &ImportError{Path: path, Message: "failed to read IDs", Cause: err}
	}
	return ids, nil
}

// ReadIDs reads identifiers from the first sheet of a spreadsheet. The file
// format is chosen by the filename extension. The identifier column is the
// one with a recognized header, else the first column. Cells that are not
// whole numbers are skipped and repeats are collapsed, keeping first order.
func ReadIDs(r io.Reader, filename string) ([]int64, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}

	col, start := idColumn(rows[0])
	seen := make(map[int64]struct{})
	var ids []int64
	for _, row := range rows[start:] {
		id, ok := parseID(cellValue(row, col))
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func readRows(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".txt":
		rows, err = readCSV(data)
	case ".xls":
		rows, err = readXLS(data)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("no worksheet found")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for j := 0; j <= row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	return file.GetRows(sheetName)
}

// idColumn picks the identifier column from the first row and reports the
// index of the first data row.
func idColumn(header []string) (col, start int) {
	for i, h := range header {
		if _, ok := idHeaders[normalizeHeader(h)]; ok {
			return i, 1
		}
	}
	if _, ok := parseID(cellValue(header, 0)); ok {
		return 0, 0
	}
	return 0, 1
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// parseID accepts positive whole numbers, including float renderings such
// as "1001.0" and Arabic-Indic digits.
func parseID(cell string) (int64, bool) {
	cell = arabicDigits.Replace(strings.TrimSpace(cell))
	if cell == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return id, id > 0
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
