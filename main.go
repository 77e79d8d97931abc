package main

import (
	"os"

	"github.com/kilianp07/solar4farm/cmd"
	"github.com/kilianp07/solar4farm/infra/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.New("main").Errorf("%v", err)
		os.Exit(1)
	}
}
