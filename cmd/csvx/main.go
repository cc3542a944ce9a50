package main

import (
	"github.com/viant/csvx/cmd/csvx/cmd"
)

func main() {
	cmd.Execute()
}
