package main

import (
	"os"

	"github.com/sebuszqo/TxTracker/cmd/txtracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
