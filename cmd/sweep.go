package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solar4farm/core/experiment"
)

var sweepFlags struct {
	weather    string
	out        string
	from       float64
	to         float64
	step       float64
	efficiency float64
	country    string
	material   string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate a range of panel surfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		f := sweepFlags
		panels, err := experiment.AreaSweep(f.from, f.to, f.step, f.efficiency, f.country, f.material)
		if err != nil {
			return err
		}
		_, err = run(ctx, cfg, f.weather, panels, f.out, cmd.OutOrStdout())
		return err
	},
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.weather, "weather", "w", "", "NSRDB weather CSV")
	f.StringVarP(&sweepFlags.out, "out", "o", "", "results file (.csv or .json)")
	f.Float64Var(&sweepFlags.from, "from", 3, "smallest area in m²")
	f.Float64Var(&sweepFlags.to, "to", 19, "largest area in m²")
	f.Float64Var(&sweepFlags.step, "step", 1, "area increment in m²")
	f.Float64Var(&sweepFlags.efficiency, "efficiency", 0.2, "panel efficiency")
	f.StringVar(&sweepFlags.country, "country", "France", "country of production")
	f.StringVar(&sweepFlags.material, "material", "Monosillicium", "cell material")
	_ = sweepCmd.MarkFlagRequired("weather")
	rootCmd.AddCommand(sweepCmd)
}
