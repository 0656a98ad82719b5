package reader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/DjordjeVuckovic/customer-reader/pkg/apis"
)

// DefaultCSVColumns is the positional layout of a customer CSV line.
var DefaultCSVColumns = []string{
	"Email",
	"FirstName",
	"LastName",
	"PhoneNumber",
	"Address.StreetAddress",
	"Address.City",
	"Address.State",
	"Address.ZipCode",
}

// DefaultMapping maps the standard customer export layout onto domain.Customer.
func DefaultMapping() *apis.CustomerMapping {
	return &apis.CustomerMapping{
		Kind:    apis.CustomerMappingKind,
		Version: apis.CustomerMappingV1,
		Metadata: apis.Metadata{
			Name:        "Default customers",
			Description: "Email, name, phone and address of a customer export",
		},
		CSVColumns: append([]string(nil), DefaultCSVColumns...),
		FieldMappings: []apis.FieldMapping{
			{Source: "Email", Target: "Email"},
			{Source: "FirstName", Target: "FirstName"},
			{Source: "LastName", Target: "LastName"},
			{Source: "PhoneNumber", Target: "Phone"},
			{Source: "Address.StreetAddress", Target: "Address.StreetAddress"},
			{Source: "Address.City", Target: "Address.City"},
			{Source: "Address.State", Target: "Address.State"},
			{Source: "Address.ZipCode", Target: "Address.ZipCode"},
		},
	}
}

type CustomerMapper struct {
	cfg *apis.CustomerMapping
}

// NewCustomerMapper checks every mapping target against domain.Customer up front.
func NewCustomerMapper(cfg *apis.CustomerMapping) (*CustomerMapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	customerType := reflect.TypeOf(domain.Customer{})
	for _, fm := range cfg.FieldMappings {
		if err := ValidateTarget(customerType, strings.Split(fm.Target, ".")); err != nil {
			return nil, fmt.Errorf("mapping target %s: %w", fm.Target, err)
		}
	}
	return &CustomerMapper{
		cfg: cfg,
	}, nil
}

// Map copies raw values onto a Customer. An absent optional source leaves the
// target empty and records it in Customer.Missing; an absent required source is an error.
func (m *CustomerMapper) Map(record map[string]string) (domain.Customer, error) {
	customer := domain.Customer{}
	val := reflect.ValueOf(&customer).Elem()

	for _, fm := range m.cfg.FieldMappings {
		sourceVal, ok := record[fm.Source]
		if !ok {
			if fm.Required {
				return domain.Customer{}, &apis.MappingError{Message: "missing source field: " + fm.Source}
			}
			customer.Missing = append(customer.Missing, fm.Target)
			continue
		}

		path := strings.Split(fm.Target, ".")
		var err error
		if len(path) > 1 {
			err = SetNestedField(val, path, sourceVal)
		} else {
			err = SetFlatField(val, path[0], sourceVal)
		}
		if err != nil {
			return domain.Customer{}, err
		}
	}
	return customer, nil
}
