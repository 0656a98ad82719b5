package presenter

import (
	"strings"

	"github.com/DjordjeVuckovic/customer-reader/internal/apperr"
	"github.com/DjordjeVuckovic/customer-reader/internal/domain"
	"github.com/DjordjeVuckovic/customer-reader/pkg/stringsutil"
)

// View is the display form of a customer. It is derived on demand and never stored.
type View struct {
	Email         string
	FirstName     string
	LastName      string
	FullName      string
	Phone         string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
}

// Normalize cleans every field for display. A customer with absent source
// values cannot be displayed and yields a NormalizationError.
func Normalize(c domain.Customer) (View, error) {
	if c.HasMissing() {
		return View{}, apperr.NewNormalization(c.Missing)
	}

	firstName := stringsutil.FirstCharToUpper(strings.TrimSpace(c.FirstName))
	lastName := stringsutil.FirstCharToUpper(strings.TrimSpace(c.LastName))

	return View{
		Email:         strings.ToLower(strings.TrimSpace(c.Email)),
		FirstName:     firstName,
		LastName:      lastName,
		FullName:      firstName + " " + lastName,
		Phone:         strings.TrimSpace(c.Phone),
		StreetAddress: stringsutil.WordsInSentenceFirstCharToUpper(strings.TrimSpace(c.Address.StreetAddress)),
		City:          stringsutil.FirstCharToUpper(strings.TrimSpace(c.Address.City)),
		State:         strings.ToUpper(strings.TrimSpace(c.Address.State)),
		ZipCode:       strings.TrimSpace(c.Address.ZipCode),
	}, nil
}

func (v View) String() string {
	var sb strings.Builder
	sb.WriteString("Email: " + v.Email + "\n")
	sb.WriteString("First Name: " + v.FirstName + "\n")
	sb.WriteString("Last Name: " + v.LastName + "\n")
	sb.WriteString("Full Name: " + v.FullName + "\n")
	sb.WriteString("Phone Number: " + v.Phone + "\n")
	sb.WriteString("Street Address: " + v.StreetAddress + "\n")
	sb.WriteString("City: " + v.City + "\n")
	sb.WriteString("State: " + v.State + "\n")
	sb.WriteString("Zip Code: " + v.ZipCode + "\n")
	return sb.String()
}
