package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/quantlab/backtest/internal/backtest"
	"github.com/quantlab/backtest/internal/datasource"
	"github.com/quantlab/backtest/internal/logger"
	"github.com/quantlab/backtest/internal/strategy"
	"github.com/quantlab/backtest/internal/types"
	"github.com/quantlab/backtest/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	config, err := backtest.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	dataPath := cmd.String("data")

	source, err := datasource.NewDataSource(":memory:", appLogger)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return err
	}

	simulator := backtest.NewSimulator(strategy.NewRegistry(), appLogger)
	simulator.SetDataPath(dataPath)

	var bar *progressbar.ProgressBar
	simulator.SetProgressCallback(func(current, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %s", config.Strategy)),
				progressbar.OptionShowCount())
		}
		bar.Set(current)
	})

	result, err := simulator.RunFromSource(ctx, config, source)
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	if storePath := cmd.String("store"); storePath != "" {
		store, err := backtest.NewTradeStore(storePath, appLogger)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Initialize(); err != nil {
			return err
		}
		if err := store.RecordRun(result); err != nil {
			return err
		}
	}

	if output := cmd.String("output"); output != "" {
		if err := types.WriteResult(output, []types.BacktestResult{result}); err != nil {
			return err
		}
	}

	summary, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(summary))

	return nil
}

func strategiesAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range strategy.NewRegistry().List() {
		fmt.Println(name)
	}

	return nil
}

func stylesAction(ctx context.Context, cmd *cli.Command) error {
	params := make(map[types.InvestmentStyle]types.TradingParams, len(types.AllStyles))
	for _, style := range types.AllStyles {
		styleParams, err := types.TradingParamsFor(style)
		if err != nil {
			return err
		}
		params[style] = styleParams
	}

	out, err := yaml.Marshal(params)
	if err != nil {
		return err
	}
	fmt.Print(string(out))

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := backtest.EmptyConfig()

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}
	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Run trading strategies against historical price data",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a single backtest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the backtest YAML config",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the market data file (.csv or .parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the result YAML to",
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Path to a DuckDB file to record the run in",
					},
				},
				Action: runAction,
			},
			{
				Name:   "strategies",
				Usage:  "List the available strategies",
				Action: strategiesAction,
			},
			{
				Name:   "styles",
				Usage:  "Show the trading parameters of each investment style",
				Action: stylesAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the backtest config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
