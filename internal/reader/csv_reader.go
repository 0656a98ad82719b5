package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

const csvDelimiter = ","

// CSVReader reads headerless, unquoted comma separated lines.
// Each line is split naively and its fields are named positionally by columns.
type CSVReader struct {
	reader  io.Reader
	columns []string
}

func NewCSVReader(reader io.Reader, columns []string) *CSVReader {
	return &CSVReader{
		reader:  reader,
		columns: columns,
	}
}

// Read stops at the first line with fewer fields than columns.
// Extra trailing fields are ignored.
func (cr *CSVReader) Read() ([]map[string]string, error) {
	br := bufio.NewReader(newTextReader(cr.reader))

	var records []map[string]string
	line := 0
	for {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return records, fmt.Errorf("read line %d: %w", line+1, err)
		}
		if text == "" && err != nil {
			return records, nil
		}

		line++
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		fields := strings.Split(text, csvDelimiter)
		if len(fields) < len(cr.columns) {
			return records, apperr.NewMalformedRecord(line,
				fmt.Sprintf("expected %d fields, got %d", len(cr.columns), len(fields)))
		}

		record := make(map[string]string, len(cr.columns))
		for i, c := range cr.columns {
			record[c] = fields[i]
		}
		records = append(records, record)

		if err != nil {
			return records, nil
		}
	}
}
