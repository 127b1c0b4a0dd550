package main

import (
	"fmt"
	"os"

	"github.com/dosewatch/dosewatch/cmd"
)

// Populated at build time via -ldflags.
var (
	version   = "dev"
	buildType = "local"
	date      = "unknown"
	commit    = "unknown"
)

func main() {
	err := cmd.Execute(os.Args, cmd.BuildArgs{
		Version:   version,
		BuildType: buildType,
		Date:      date,
		Commit:    commit,
	})
	if err != nil {
		fmt.Println("dosewatch:", err.Error())
		os.Exit(1)
	}
}
