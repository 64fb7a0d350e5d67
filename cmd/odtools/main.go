package main

import (
	"github.com/oneconcern/odtools/cmd/odtools/cmd"
)

func main() {
	cmd.Execute()
}
