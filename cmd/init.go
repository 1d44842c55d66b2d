package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/typelint/typelint/internal/rules"
	tt "github.com/typelint/typelint/internal/types"
	"github.com/typelint/typelint/lint"
)

// initCmd: typelint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".typelint.yaml"
	}

	// Create a yaml file listing every rule at its default severity
	configRules := make(map[string]tt.ConfigRule)
	for _, name := range rules.DefaultRegistry().RuleNames() {
		configRules[name] = tt.ConfigRule{Severity: tt.SeverityError}
	}
	config := lint.Config{
		Name:  "typelint",
		Rules: configRules,
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}

	return nil
}
