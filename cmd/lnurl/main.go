package main

import (
	"fmt"
	"os"

	"github.com/sunboyy/lnurlcli/cmd/lnurl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[lnurlcli] error: %v\n", err)
		os.Exit(1)
	}
}
