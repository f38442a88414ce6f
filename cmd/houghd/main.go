package main

import (
	"os"

	"github.com/vinay1337/hough-server/cmd/houghd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
