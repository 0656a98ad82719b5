package reader

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

type YAMLConfigLoader struct {
	reader io.Reader
}

func NewYAMLConfigLoader(reader io.Reader) *YAMLConfigLoader {
	return &YAMLConfigLoader{
		reader: reader,
	}
}

func (cl *YAMLConfigLoader) Load(validate bool) (*apis.CustomerMapping, error) {
	decoder := yaml.NewDecoder(cl.reader)
	var mapping apis.CustomerMapping
	if err := decoder.Decode(&mapping); err != nil {
		return nil, err
	}
	if validate {
		if err := mapping.Validate(); err != nil {
			return nil, err
		}
	}
	return &mapping, nil
}
