package reader

import (
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

// Reader decodes a whole document into raw records keyed by source name.
// A source that is absent from the document is absent from the record map.
// On failure the records decoded before the failing one are returned along with the error.
type Reader interface {
	Read() ([]map[string]string, error)
}

const sourcePathSeparator = "."

// Sources returns the distinct source keys of a mapping in declaration order.
func Sources(mapping *apis.CustomerMapping) []string {
	seen := make(map[string]struct{}, len(mapping.FieldMappings))
	sources := make([]string, 0, len(mapping.FieldMappings))
	for _, fm := range mapping.FieldMappings {
		if _, ok := seen[fm.Source]; ok {
			continue
		}
		seen[fm.Source] = struct{}{}
		sources = append(sources, fm.Source)
	}
	return sources
}

func splitSource(source string) []string {
	return strings.Split(source, sourcePathSeparator)
}
