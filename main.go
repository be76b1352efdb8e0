package main

import (
	"fmt"
	"os"

	"jortega/finanzas/cmd/importcsv"
	"jortega/finanzas/cmd/root"
	"jortega/finanzas/cmd/serve"
)

func init() {
	root.Init()
	importcsv.Init()

	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(importcsv.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
