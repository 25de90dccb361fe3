package main

import (
	"os"

	"neighbourcam/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
