package main

import (
	"fmt"
	"os"

	"github.com/kidusabe1/Budgy-By-K/cmd/categorize"
	"github.com/kidusabe1/Budgy-By-K/cmd/export"
	"github.com/kidusabe1/Budgy-By-K/cmd/mappings"
	"github.com/kidusabe1/Budgy-By-K/cmd/report"
	"github.com/kidusabe1/Budgy-By-K/cmd/root"
	"github.com/kidusabe1/Budgy-By-K/cmd/serve"
)

func init() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(mappings.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
