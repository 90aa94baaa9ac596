package main

import (
	"os"
	"strconv"
)

// Config holds environment-based configuration for the MCP server
type Config struct {
	// Root of the management group hierarchy to assess
	RootManagementGroup string

	// Number of full past months to compare
	Months int

	// Comma list of scope tiers to include: mg,sub,rg
	Scopes string

	// Optional YAML tuning file
	ConfigPath string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		RootManagementGroup: os.Getenv("AZURE_ROOT_MANAGEMENT_GROUP"),
		Months:              getEnvInt("BUDGET_DOCTOR_MONTHS", 3),
		Scopes:              getEnvOrDefault("BUDGET_DOCTOR_SCOPES", "mg,sub,rg"),
		ConfigPath:          os.Getenv("BUDGET_DOCTOR_CONFIG"),
	}
}

// HasRoot returns true if a root management group is configured
func (c *Config) HasRoot() bool {
	return c.RootManagementGroup != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
