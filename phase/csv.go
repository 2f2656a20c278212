package phase

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// sweepRow is the CSV wire format for one beta-sweep sample. Fields are
// pre-formatted strings so gocsv reproduces exactly the six-decimal layout
// callers expect, independent of Go's default float formatting.
type sweepRow struct {
	Beta string `csv:"beta"`
	Phi  string `csv:"phi"`
	Chi  string `csv:"chi"`
}

// ExportCSV writes betas, phis, and chis as a three-column CSV with header
// "beta,phi,chi" and six-decimal formatting. All three slices must have
// equal length, or an ErrInvalidArgument-wrapping error is returned.
// Returns (true, nil) on success, (false, err) on any failure.
func ExportCSV(path string, betas, phis, chis []float64) (bool, error) {
	n := len(betas)
	if n != len(phis) || n != len(chis) {
		return false, fmt.Errorf("%w: mismatched lengths beta=%d phi=%d chi=%d", ErrInvalidArgument, n, len(phis), len(chis))
	}

	rows := make([]*sweepRow, n)
	for i := range betas {
		rows[i] = &sweepRow{
			Beta: fmt.Sprintf("%.6f", betas[i]),
			Phi:  fmt.Sprintf("%.6f", phis[i]),
			Chi:  fmt.Sprintf("%.6f", chis[i]),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return false, fmt.Errorf("writing csv: %w", err)
	}

	return true, nil
}
