package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solar4farm/config"
	coremon "github.com/kilianp07/solar4farm/core/monitoring"
	"github.com/kilianp07/solar4farm/infra/monitoring"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "solar4farm",
	Short:         "Off-grid solar installation simulator for farm robots",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Logging.Apply(); err != nil {
			return err
		}
		mon, err := monitoring.NewSentryMonitor(c.Sentry)
		if err != nil {
			return fmt.Errorf("sentry: %w", err)
		}
		coremon.Init(mon)
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (YAML or JSON)")
}

// Execute runs the CLI and reports failures to the configured monitor.
func Execute() error {
	defer coremon.Flush(2 * time.Second)
	defer coremon.Recover()
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		name := rootCmd.Name()
		if cmd != nil {
			name = cmd.Name()
		}
		coremon.CaptureException(err, map[string]string{"command": name})
	}
	return err
}
