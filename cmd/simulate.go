package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/infra/dataset"
)

var errNoPanels = errors.New("no panels: use --panels or simulation.panels")

var simulateFlags struct {
	weather string
	panels  string
	out     string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate candidate panels and rank them by efficiency per kg CO2",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var panels []power.Panel
		if simulateFlags.panels != "" {
			p, err := dataset.ReadPanelsFile(simulateFlags.panels)
			if err != nil {
				return err
			}
			panels = p
		} else {
			panels = cfg.Simulation.Panels
		}
		if len(panels) == 0 {
			return errNoPanels
		}
		_, err := run(ctx, cfg, simulateFlags.weather, panels, simulateFlags.out, cmd.OutOrStdout())
		return err
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVarP(&simulateFlags.weather, "weather", "w", "", "NSRDB weather CSV")
	f.StringVarP(&simulateFlags.panels, "panels", "p", "", "panel CSV (Area, Efficiency, Origin, Power, Material)")
	f.StringVarP(&simulateFlags.out, "out", "o", "", "results file (.csv or .json)")
	_ = simulateCmd.MarkFlagRequired("weather")
	rootCmd.AddCommand(simulateCmd)
}
