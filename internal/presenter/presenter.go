package presenter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/DjordjeVuckovic/customer-reader/internal/storage"
)

type Presenter struct {
	out io.Writer
}

func New(out io.Writer) *Presenter {
	return &Presenter{
		out: out,
	}
}

// Display writes the record count followed by one block per customer, in
// collection order. Customers that fail normalization are logged and skipped;
// the count still includes them.
func (p *Presenter) Display(collection storage.Lister) error {
	customers := collection.All()
	if _, err := fmt.Fprintf(p.out, "Added this many customers: %d\n\n", len(customers)); err != nil {
		return err
	}

	skipped := 0
	for _, c := range customers {
		view, err := Normalize(c)
		if err != nil {
			slog.Warn("Skipping customer", "id", c.ID, "source", c.Source, "error", err)
			skipped++
			continue
		}

		if _, err := fmt.Fprintln(p.out, view.String()); err != nil {
			return err
		}
	}

	if skipped > 0 {
		slog.Info("Some customers were not displayed", "skipped", skipped, "total", len(customers))
	}
	return nil
}
