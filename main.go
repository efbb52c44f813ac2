package main

import (
	"fmt"
	"os"

	"fjacquet/spendlens/cmd/anomaly"
	"fjacquet/spendlens/cmd/batch"
	"fjacquet/spendlens/cmd/categorize"
	"fjacquet/spendlens/cmd/chat"
	"fjacquet/spendlens/cmd/extract"
	"fjacquet/spendlens/cmd/forecast"
	"fjacquet/spendlens/cmd/optimize"
	"fjacquet/spendlens/cmd/root"
	"fjacquet/spendlens/cmd/summary"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(anomaly.Cmd)
	root.Cmd.AddCommand(forecast.Cmd)
	root.Cmd.AddCommand(optimize.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(chat.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
