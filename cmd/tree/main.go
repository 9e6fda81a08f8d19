package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/tree/internal/cli"
	"github.com/temirov/tree/internal/utils"
)

// main is the entry point for the tree command.
func main() {
	os.Exit(run())
}

func run() int {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()

	applicationExecutionError := cli.Execute(loggerInstance)
	if applicationExecutionError == nil {
		return utils.ExitSuccess
	}
	loggerInstance.Error(fmt.Sprintf(utils.ErrorLogFormat, applicationExecutionError))

	var usageError *cli.UsageError
	if errors.As(applicationExecutionError, &usageError) {
		return utils.ExitUsage
	}
	return utils.ExitFailure
}
