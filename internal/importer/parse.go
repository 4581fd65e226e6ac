package importer

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
)

var (
	ErrNoData   = errors.New("A planilha não possui dados para importar.")
	ErrNoHeader = errors.New("Não foi possível identificar o cabeçalho da planilha.")
)

// Row is one spreadsheet data row keyed by its header text. Every
// mapped header is present, possibly with an empty value, so alias
// resolution sees the same columns on every row.
type Row map[string]string

// ParseFile decodes an uploaded spreadsheet into header-keyed rows.
// CSV and plain-text payloads take the delimiter-detecting path;
// everything else is treated as an Excel workbook (first sheet).
func ParseFile(filename, mimetype string, r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if strings.Contains(mimetype, "csv") || strings.Contains(mimetype, "text/plain") ||
		ext == ".csv" || ext == ".txt" {
		return buildRows(parseCsvContent(data))
	}
	return parseXlsx(data)
}

func parseXlsx(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("Falha ao ler a planilha Excel.")
	}

	sheet := f.GetSheetName(1)
	if sheet == "" {
		for _, name := range f.GetSheetMap() {
			sheet = name
			break
		}
	}
	if sheet == "" {
		return nil, ErrNoData
	}
	return buildRows(f.GetRows(sheet))
}

// parseCsvContent splits a CSV payload into raw cells. The delimiter
// is ';' when the first line carries one, ',' otherwise.
func parseCsvContent(data []byte) [][]string {
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil
	}

	delimiter := ','
	if firstLine, _, _ := strings.Cut(content, "\n"); strings.Contains(firstLine, ";") {
		delimiter = ';'
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}
	return rows
}

func buildRows(raw [][]string) ([]Row, error) {
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	headers := map[int]string{}
	for col, cell := range raw[0] {
		if h := strings.TrimSpace(cell); h != "" {
			headers[col] = h
		}
	}
	if len(headers) == 0 {
		return nil, ErrNoHeader
	}

	var rows []Row
	for _, cells := range raw[1:] {
		row := Row{}
		empty := true
		for col, header := range headers {
			value := ""
			if col < len(cells) {
				value = cells[col]
			}
			row[header] = value
			if strings.TrimSpace(value) != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// pickField returns the first alias present in the row, empty string
// when none matches.
func pickField(row Row, aliases ...string) string {
	for _, key := range aliases {
		if v, ok := row[key]; ok {
			return v
		}
	}
	return ""
}
