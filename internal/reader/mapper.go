package reader

import "github.com/DjordjeVuckovic/customer-reader/internal/domain"

type Mapper interface {
	Map(record map[string]string) (domain.Customer, error)
}
