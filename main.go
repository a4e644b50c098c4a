package main

import (
	"fmt"
	"os"

	"github.com/KelDakroury/The-Mighty-Todolist-Telegram-Bot/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the todolist command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
