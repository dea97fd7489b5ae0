// Command seed loads the catalogue CSV and either publishes it to the Kafka
// topic the dashboard snapshots from, or writes it as a JSON fixture.
//
// Usage:
//
//	go run ./cmd/seed publish --csv earthquake_data_fix.csv --brokers localhost:9092
//	go run ./cmd/seed fixture --csv earthquake_data_fix.csv --out testdata/records.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/quake-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	csvPath    string
	footerRows int
	validOnly  bool
	logLevel   string
	logFormat  string
}

func newApp() *cli.Command {
	var opts options

	return &cli.Command{
		Name:  "seed",
		Usage: "load the earthquake catalogue into Kafka or a JSON fixture",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "catalogue CSV export",
				Value:       "earthquake_data_fix.csv",
				Sources:     cli.EnvVars("DATASET_PATH"),
				Destination: &opts.csvPath,
			},
			&cli.IntFlag{
				Name:        "footer-rows",
				Usage:       "trailing rows to drop from the CSV",
				Value:       3,
				Sources:     cli.EnvVars("DATASET_FOOTER_ROWS"),
				Destination: &opts.footerRows,
			},
			&cli.BoolFlag{
				Name:        "valid-only",
				Usage:       "drop rows that do not parse",
				Destination: &opts.validOnly,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Value:       "info",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Destination: &opts.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Value:       "auto",
				Sources:     cli.EnvVars("LOG_FORMAT"),
				Destination: &opts.logFormat,
			},
		},
		Commands: []*cli.Command{
			cmdPublish(&opts),
			cmdFixture(&opts),
		},
	}
}

func cmdPublish(opts *options) *cli.Command {
	var (
		brokers []string
		topic   string
	)
	return &cli.Command{
		Name:  "publish",
		Usage: "publish every row to the dataset topic",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "brokers",
				Value:       []string{"localhost:9092"},
				Sources:     cli.EnvVars("KAFKA_BROKERS"),
				Destination: &brokers,
			},
			&cli.StringFlag{
				Name:        "topic",
				Value:       "earthquake-records",
				Sources:     cli.EnvVars("KAFKA_TOPIC"),
				Destination: &topic,
			},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			logger := observability.NewLoggerTo(os.Stderr, opts.logLevel, opts.logFormat)
			records, err := loadRecords(opts, logger)
			if err != nil {
				return err
			}

			w := kafkaadapter.NewWriter(brokers, topic, logger)
			defer w.Close()
			if err := w.Publish(ctx, records); err != nil {
				return goerr.Wrap(err, "publish dataset", goerr.V("topic", topic))
			}
			return nil
		},
	}
}

func cmdFixture(opts *options) *cli.Command {
	var out string
	return &cli.Command{
		Name:  "fixture",
		Usage: "write the rows as a JSON array of raw records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "output path, - for stdout",
				Value:       "-",
				Destination: &out,
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			logger := observability.NewLoggerTo(os.Stderr, opts.logLevel, opts.logFormat)
			records, err := loadRecords(opts, logger)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "marshal fixture")
			}
			data = append(data, '\n')

			if out == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return goerr.Wrap(err, "write fixture", goerr.V("path", out))
			}
			logger.Info("fixture written", "path", out, "rows", len(records))
			return nil
		},
	}
}

// loadRecords reads the CSV and, with --valid-only, keeps the rows that parse
// in their normalised form.
func loadRecords(opts *options, logger *slog.Logger) ([]domain.RawRecord, error) {
	src := csvfile.NewSource(opts.csvPath, opts.footerRows, logger)
	records, err := src.Extract(context.Background())
	if err != nil {
		return nil, err
	}
	if !opts.validOnly {
		return records, nil
	}

	kept := make([]domain.RawRecord, 0, len(records))
	for i, raw := range records {
		e, err := domain.ParseRecord(raw)
		if err != nil {
			logger.Warn("dropping row", "row", i, "error", err)
			continue
		}
		kept = append(kept, domain.FormatRecord(e))
	}
	logger.Info("rows validated", "read", len(records), "kept", len(kept))
	return kept, nil
}
