package util

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dataarchitect/architect/internal/config"
)

// GetEnvWithDefault returns the value of an environment variable or a default value if not set
func GetEnvWithDefault(envVar, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return defaultValue
}

// PreRunEWithEnvVars creates a PreRunE function that fills generation
// settings from ARCHITECT_* environment variables when the corresponding
// flags weren't explicitly set
func PreRunEWithEnvVars(dialectPtr, formatPtr, outputPtr *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if v := GetEnvWithDefault(config.EnvDialect, ""); v != "" && !cmd.Flags().Changed("dialect") {
			*dialectPtr = v
		}
		if v := GetEnvWithDefault(config.EnvFormat, ""); v != "" && !cmd.Flags().Changed("format") {
			*formatPtr = v
		}
		if v := GetEnvWithDefault(config.EnvOutputDir, ""); v != "" && !cmd.Flags().Changed("output") {
			*outputPtr = v
		}
		return nil
	}
}
