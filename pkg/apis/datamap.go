package apis

import "fmt"

const (
	CustomerMappingKind = "CustomerMapping"
	CustomerMappingV1   = "v1"
)

// CustomerMapping describes how raw source keys land on customer fields.
type CustomerMapping struct {
	Kind     string   `json:"kind" example:"CustomerMapping" yaml:"kind"`
	Version  string   `json:"version" example:"v1" yaml:"version"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	// CSVColumns names the positional columns of a delimited file, in order.
	CSVColumns    []string       `json:"csvColumns" yaml:"csvColumns"`
	FieldMappings []FieldMapping `json:"fieldMappings" yaml:"fieldMappings"`
}

type Metadata struct {
	Name        string `json:"name" example:"Default customers" yaml:"name"`
	Description string `json:"description" example:"Mapping for customer exports" yaml:"description"`
}

type FieldMapping struct {
	Source   string `json:"source" example:"Address.City" yaml:"source"`
	Target   string `json:"target" example:"Address.City" yaml:"target"`
	Required bool   `json:"required" example:"false" yaml:"required"`
}

func (cm *CustomerMapping) Validate() error {
	if cm.Kind != CustomerMappingKind {
		return fmt.Errorf("kind must be %s", CustomerMappingKind)
	}
	if cm.Version == "" {
		return fmt.Errorf("version is required")
	}
	if cm.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if len(cm.CSVColumns) == 0 {
		return fmt.Errorf("at least one csv column is required")
	}
	if len(cm.FieldMappings) == 0 {
		return fmt.Errorf("at least one field mapping is required")
	}
	for i, fm := range cm.FieldMappings {
		if fm.Source == "" {
			return fmt.Errorf("fieldMappings[%d] must have source defined", i)
		}
		if fm.Target == "" {
			return fmt.Errorf("fieldMappings[%d] must have target defined", i)
		}
	}
	return nil
}

type MappingError struct {
	Message string `json:"message" example:"missing source field: Email"`
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping error: %s", e.Message)
}
