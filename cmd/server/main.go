package main

import (
	"os"

	_ "taskdesk/docs"

	"github.com/spf13/cobra"
)

// @title           Taskdesk API
// @version         1.0
// @description     API for managing employees and the tasks assigned to them.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskdesk",
		Short:         "Employee and task management backend",
		Long:          `Serves the employee/task API over HTTP, or browses the same data interactively from a terminal.`,
		SilenceUsage:  true,
	}
	root.AddCommand(newServeCmd(), newBrowseCmd())
	return root
}
