package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newApp(afero.NewOsFs()).rootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		}
		os.Exit(1)
	}
}
