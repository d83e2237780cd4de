package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DRNaser/shift-optimizer-sub007/app"
	"github.com/DRNaser/shift-optimizer-sub007/config"
	"github.com/DRNaser/shift-optimizer-sub007/core/model"
	"github.com/DRNaser/shift-optimizer-sub007/infra/logger"
	"github.com/DRNaser/shift-optimizer-sub007/pkg/export"
)

var (
	outPath   string
	outFormat string
)

var solveCmd = &cobra.Command{
	Use:   "solve <tours.json>",
	Short: "Assign tours to the minimal feasible number of weekly rosters",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file instead of stdout")
	solveCmd.Flags().StringVarP(&outFormat, "format", "f", "json", "output format: json or csv")
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tours, err := readTours(args[0])
	if err != nil {
		return err
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	go func() {
		if err := svc.ServeMetrics(ctx); err != nil {
			logger.New("main").Errorf("metrics server: %v", err)
		}
	}()

	res, err := svc.Solve(ctx, tours)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch outFormat {
	case "json":
		err = export.WriteJSON(out, res)
	case "csv":
		err = export.WriteCSV(out, res.Assignments)
	default:
		err = fmt.Errorf("unknown format %q", outFormat)
	}
	if err != nil {
		return err
	}
	if !res.Passed {
		return fmt.Errorf("audit failed, release blocked")
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func readTours(path string) ([]model.TourInstance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tours []model.TourInstance
	if err := json.Unmarshal(raw, &tours); err != nil {
		return nil, fmt.Errorf("parse tours: %w", err)
	}
	return tours, nil
}
