package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/budget-doctor/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"budget-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterSubscriptionTools(s)
	tools.RegisterBudgetTools(s, cfg.RootManagementGroup, cfg.Months, cfg.Scopes, cfg.ConfigPath)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
