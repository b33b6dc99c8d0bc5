package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/quantlab/backtest/internal/version"
	"github.com/quantlab/backtest/pkg/marketdata"
	"github.com/quantlab/backtest/pkg/utils"
	"github.com/urfave/cli/v3"
)

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	config := marketdata.DownloadConfig{
		Ticker:    cmd.String("ticker"),
		StartDate: cmd.Timestamp("start").Format(time.RFC3339),
		EndDate:   cmd.Timestamp("end").Format(time.RFC3339),
		Timespan:  cmd.String("timespan"),
		Output:    cmd.String("output"),
		ApiKey:    cmd.String("api-key"),
	}

	if configPath := cmd.String("config"); configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read download config: %w", err)
		}

		config, err = marketdata.ParseDownloadConfig(data)
		if err != nil {
			return err
		}
	} else if err := config.Validate(); err != nil {
		return err
	}

	provider, err := marketdata.NewProvider(marketdata.ProviderPolygon, config.ApiKey)
	if err != nil {
		return err
	}

	writer, err := marketdata.NewDuckDBWriter(config.Output)
	if err != nil {
		return err
	}
	provider.ConfigWriter(writer)

	start, end, err := config.DateRange()
	if err != nil {
		return err
	}

	path, err := provider.Download(ctx, config.Ticker, start, end, marketdata.Timespan(config.Timespan), nil)
	if err != nil {
		return err
	}

	log.Printf("Downloaded %s data to %s", config.Ticker, path)

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := utils.GetSchemaFromConfig(marketdata.DownloadConfig{})
	if err != nil {
		return err
	}
	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "download",
		Usage:   "Download historical market data for backtesting",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Download bars for a ticker",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a download YAML config; overrides the other flags",
					},
					&cli.StringFlag{
						Name:    "ticker",
						Aliases: []string{"t"},
						Usage:   "Trading symbol to download",
					},
					&cli.TimestampFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Start date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format, defaults to today",
						Value:   time.Now(),
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02"},
						},
					},
					&cli.StringFlag{
						Name:  "timespan",
						Usage: "Bar resolution (1m, 5m, 15m, 30m, 1h, 1d, 1w)",
						Value: string(marketdata.TimespanOneDay),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Destination file with a .csv or .parquet extension",
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "Polygon.io API key",
						Sources: cli.EnvVars("POLYGON_API_KEY"),
					},
				},
				Action: downloadAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the download config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
