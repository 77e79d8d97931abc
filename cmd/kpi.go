package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solar4farm/infra/kpi"
	"github.com/kilianp07/solar4farm/jobs/ecokpi"
	"github.com/kilianp07/solar4farm/pkg/export"
)

var kpiFlags struct {
	db      string
	results string
	from    int
	to      int
}

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Eco KPI database commands",
}

var kpiImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store the epochs of a JSON results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(kpiFlags.results)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		results, err := export.ReadJSON(f)
		if err != nil {
			return err
		}
		store, err := kpi.NewSQLiteStore(kpiFlags.db)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		n, err := ecokpi.Backfill(store, results)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d records imported\n", n)
		return err
	},
}

var kpiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the stored systems",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := kpi.NewSQLiteStore(kpiFlags.db)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		sums, err := ecokpi.Summarize(store, kpiFlags.from, kpiFlags.to)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "SYSTEM\tEPOCHS\tEFFICIENCY %\tEMBODIED kg\tOPERATIONAL kg/epoch"); err != nil {
			return err
		}
		for _, s := range sums {
			if _, err := fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\t%.3f\n", s.System, s.Epochs, s.MeanEfficiency, s.EmbodiedKg, s.MeanOperationalKg); err != nil {
				return err
			}
		}
		return tw.Flush()
	},
}

func init() {
	kpiCmd.PersistentFlags().StringVar(&kpiFlags.db, "db", "eco.db", "SQLite database")
	kpiImportCmd.Flags().StringVarP(&kpiFlags.results, "results", "r", "", "results file written with --out *.json")
	_ = kpiImportCmd.MarkFlagRequired("results")
	kpiShowCmd.Flags().IntVar(&kpiFlags.from, "from", 0, "first epoch")
	kpiShowCmd.Flags().IntVar(&kpiFlags.to, "to", 1<<30, "last epoch")
	kpiCmd.AddCommand(kpiImportCmd, kpiShowCmd)
	rootCmd.AddCommand(kpiCmd)
}
