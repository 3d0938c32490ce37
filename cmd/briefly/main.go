package main

import (
	"os"

	"github.com/BrandonSosa3/BrieflyGlobal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
