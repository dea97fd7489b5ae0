// Command validate checks a catalogue CSV export before it is served: every
// row parses, years fall inside the dashboard range, coordinates are on the
// globe, and depth labels are consistent with the depths they bucket.
//
// Usage:
//
//	go run ./cmd/validate --csv earthquake_data_fix.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/urfave/cli/v3"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// errValidationFailed is returned after the report when any phase failed.
var errValidationFailed = errors.New("validation failed")

func main() {
	var (
		csvPath    string
		footerRows int
	)

	cmd := &cli.Command{
		Name:  "validate",
		Usage: "check a catalogue CSV export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "csv",
				Value:       "earthquake_data_fix.csv",
				Sources:     cli.EnvVars("DATASET_PATH"),
				Destination: &csvPath,
			},
			&cli.IntFlag{
				Name:        "footer-rows",
				Value:       3,
				Sources:     cli.EnvVars("DATASET_FOOTER_ROWS"),
				Destination: &footerRows,
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			f, err := os.Open(csvPath)
			if err != nil {
				return err
			}
			defer f.Close()

			raws, err := csvfile.ReadRecords(f, footerRows)
			if err != nil {
				return fmt.Errorf("read %s: %w", csvPath, err)
			}
			if code := run(os.Stdout, raws); code != 0 {
				return errValidationFailed
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(w io.Writer, raws []domain.RawRecord) int {
	fmt.Fprintln(w, "=== Earthquake Catalogue Validation ===")
	fmt.Fprintln(w)

	parsing, records := validateParsing(raws)
	phases := []*phase{
		parsing,
		validateYears(records),
		validateCoordinates(records),
		validateDepthLabels(records),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d read, %d parsed, %d without country\n",
		len(raws), len(records), countMissingCountry(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// indexed keeps the CSV data row number of a parsed record.
type indexed struct {
	row int
	domain.Earthquake
}

func validateParsing(raws []domain.RawRecord) (*phase, []indexed) {
	p := &phase{name: "Phase 1: Row parsing"}
	records := make([]indexed, 0, len(raws))
	for i, raw := range raws {
		e, err := domain.ParseRecord(raw)
		if err != nil {
			p.errorf("row %d: %v", i+1, err)
			continue
		}
		records = append(records, indexed{row: i + 1, Earthquake: e})
	}
	return p, records
}

func validateYears(records []indexed) *phase {
	p := &phase{name: "Phase 2: Years within dashboard range"}
	for _, r := range records {
		if !domain.FullYears.Contains(r.Year()) {
			p.errorf("row %d: year %d outside %s", r.row, r.Year(), domain.FullYears)
		}
	}
	return p
}

func validateCoordinates(records []indexed) *phase {
	p := &phase{name: "Phase 3: Coordinates and magnitudes"}
	for _, r := range records {
		if r.Latitude < -90 || r.Latitude > 90 {
			p.errorf("row %d: latitude %v out of range", r.row, r.Latitude)
		}
		if r.Longitude < -180 || r.Longitude > 180 {
			p.errorf("row %d: longitude %v out of range", r.row, r.Longitude)
		}
		if r.Magnitude <= 0 {
			p.errorf("row %d: magnitude %v not positive", r.row, r.Magnitude)
		}
		if r.Depth < 0 {
			p.errorf("row %d: negative depth %v", r.row, r.Depth)
		}
	}
	return p
}

// validateDepthLabels checks that the label buckets do not overlap: every Low
// depth is at most every Mid depth, and every Mid at most every High.
func validateDepthLabels(records []indexed) *phase {
	p := &phase{name: "Phase 4: Depth label consistency"}

	type span struct {
		lo, hi float64
		seen   bool
	}
	spans := make(map[domain.DepthLabel]*span, len(domain.DepthLabels))
	for _, l := range domain.DepthLabels {
		spans[l] = &span{}
	}
	for _, r := range records {
		s := spans[r.DepthLabel]
		if !s.seen {
			s.lo, s.hi, s.seen = r.Depth, r.Depth, true
			continue
		}
		s.lo = min(s.lo, r.Depth)
		s.hi = max(s.hi, r.Depth)
	}

	labels := slices.DeleteFunc(slices.Clone(domain.DepthLabels), func(l domain.DepthLabel) bool {
		return !spans[l].seen
	})
	for i := 1; i < len(labels); i++ {
		shallow, deep := spans[labels[i-1]], spans[labels[i]]
		if shallow.hi > deep.lo {
			p.errorf("%s depths reach %v but %s depths start at %v",
				labels[i-1], shallow.hi, labels[i], deep.lo)
		}
	}
	return p
}

func countMissingCountry(records []indexed) int {
	n := 0
	for _, r := range records {
		if r.Country == "" {
			n++
		}
	}
	return n
}
