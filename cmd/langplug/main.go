package main

import (
	"os"

	"github.com/Jonathangadeaharder/langplug/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
