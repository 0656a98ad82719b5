package reader

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

// Factory builds a Reader for one document.
type Factory func(r io.Reader, mapping *apis.CustomerMapping) Reader

var factories = map[string]Factory{
	".csv": func(r io.Reader, mapping *apis.CustomerMapping) Reader {
		return NewCSVReader(r, mapping.CSVColumns)
	},
	".xml": func(r io.Reader, mapping *apis.CustomerMapping) Reader {
		return NewXMLReader(r, Sources(mapping))
	},
	".json": func(r io.Reader, mapping *apis.CustomerMapping) Reader {
		return NewJSONReader(r, Sources(mapping))
	},
}

// Lookup selects a reader factory by file extension, ignoring case.
func Lookup(path string) (Factory, bool) {
	f, ok := factories[Extension(path)]
	return f, ok
}

// Extension returns the lower-cased extension of path, including the dot.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Extensions lists the supported extensions in the order they are advertised.
func Extensions() []string {
	return []string{".csv", ".xml", ".json"}
}
