package reader

import (
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReader reads a top-level array of customer objects. Each source key is a
// dotted path of object keys.
type JSONReader struct {
	reader  io.Reader
	sources []string
}

func NewJSONReader(reader io.Reader, sources []string) *JSONReader {
	return &JSONReader{
		reader:  reader,
		sources: sources,
	}
}

// Read tolerates a missing or null leaf key, the source is then absent from the
// record. A missing nested object (e.g. Address) or a non-object array element
// stops reading at that element.
func (jr *JSONReader) Read() ([]map[string]string, error) {
	decoder := json.NewDecoder(newTextReader(jr.reader))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, apperr.NewMalformedRecordWrap(0, "invalid json document", err)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, apperr.NewMalformedRecord(0, fmt.Sprintf("top-level value is %s, expected array", jsonKind(doc)))
	}

	var records []map[string]string
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return records, apperr.NewMalformedRecord(i+1, fmt.Sprintf("element is %s, expected object", jsonKind(item)))
		}

		record := make(map[string]string, len(jr.sources))
		for _, source := range jr.sources {
			value, present, err := lookupJSON(obj, splitSource(source))
			if err != nil {
				return records, apperr.NewMalformedRecordWrap(i+1, source, err)
			}
			if present {
				record[source] = value
			}
		}
		records = append(records, record)
	}

	return records, nil
}

func lookupJSON(obj map[string]any, path []string) (string, bool, error) {
	for _, key := range path[:len(path)-1] {
		nested, ok := obj[key].(map[string]any)
		if !ok {
			return "", false, fmt.Errorf("%s is %s, expected object", key, jsonKind(obj[key]))
		}
		obj = nested
	}

	leaf := path[len(path)-1]
	switch v := obj[leaf].(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case fmt.Stringer:
		// numbers, decoded as json.Number
		return v.String(), true, nil
	default:
		return "", false, fmt.Errorf("%s is %s, expected scalar", leaf, jsonKind(v))
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}
