package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Izazzubayer/Pathly/internal/export"
	"github.com/Izazzubayer/Pathly/internal/logger"
	"github.com/Izazzubayer/Pathly/internal/models"
	"github.com/Izazzubayer/Pathly/internal/planner"
)

var (
	planInput  string
	planFormat string
	planSeed   int64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Optimize a plan request file offline and print the itinerary",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if planInput != "" && planInput != "-" {
			f, err := os.Open(planInput)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer f.Close()
			in = f
		}

		opts := planner.Options{
			DayStart:   cfg.Planner.DayStart,
			TravelMode: models.TravelMode(cfg.Planner.TravelMode),
			Seed:       cfg.Planner.Seed,
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = planSeed
		}

		return runPlan(cmd.Context(), in, cmd.OutOrStdout(), cmd.ErrOrStderr(), planFormat, opts, log)
	},
}

func init() {
	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "Plan request JSON file (default stdin)")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "Output format: text, json or geojson")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "Fix clustering for reproducible plans")
	rootCmd.AddCommand(planCmd)
}

// runPlan reads a PlanRequest from in, optimizes it and writes the export to
// out. Warnings go to errOut.
func runPlan(ctx context.Context, in io.Reader, out, errOut io.Writer, format string, opts planner.Options, log *logger.Logger) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	var req models.PlanRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decoding plan request: %w", err)
	}

	opt, err := planner.New(opts, log)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	result, err := opt.Optimize(ctx, &req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(errOut, "warning: %s\n", w)
	}

	return export.Write(out, f, result.Itinerary, planner.StartingPoint(&req))
}
