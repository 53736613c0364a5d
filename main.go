package main

import (
	"fmt"
	"os"

	"fjacquet/broker-qif/cmd/batch"
	"fjacquet/broker-qif/cmd/convert"
	"fjacquet/broker-qif/cmd/formats"
	"fjacquet/broker-qif/cmd/identify"
	"fjacquet/broker-qif/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(identify.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(formats.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
