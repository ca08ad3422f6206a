// reporover manages and analyzes the repositories of a GitHub classroom organization.
package main

import (
	"fmt"
	"os"

	"github.com/astutesource/reporover/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
