package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/flicks/internal/cli"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := cli.NewRootCmd(Version).Execute(); err != nil {
		// Catalog errors already carry the prefix
		msg := err.Error()
		if !strings.HasPrefix(msg, "Error: ") {
			msg = "Error: " + msg
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
