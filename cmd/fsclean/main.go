// Package main provides the entry point for the fsclean CLI.
package main

import (
	"errors"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Is(err, errChangelogWrite) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
