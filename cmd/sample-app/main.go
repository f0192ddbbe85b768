package main

import (
	"os"

	"github.com/coast-guide/agent-fleet/internal/cli"
	"github.com/coast-guide/agent-fleet/internal/config"
)

func main() {
	if err := cli.NewRootCommand(config.SampleApp).Execute(); err != nil {
		os.Exit(1)
	}
}
