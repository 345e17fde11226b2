package main

import (
	"os"

	"github.com/skillgate/interviewd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
