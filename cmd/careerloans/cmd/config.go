package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for loan simulations.

Subcommands:
  init     - Generate a configuration file from a difficulty preset
  validate - Validate an existing configuration file

Examples:
  careerloans config init --preset hard -o hard.toml
  careerloans config validate -f hard.toml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configInitPreset   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "careerloans.yaml", "output config file path (.yaml, .toml or .json)")
	configInitCmd.Flags().StringVar(&configInitPreset, "preset", "normal", "difficulty preset: easy, normal, hard")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Preset(configInitPreset)
	if err != nil {
		return err
	}
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created %s configuration: %s\n", configInitPreset, configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  careerloans run -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	t := cfg.Tiers
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Tiers: rep %d/%d, loans %d/%d/%d, principal %.0f/%.0f/%.0f\n",
		t.RepTier2, t.RepTier3, t.MaxLoansTier1, t.MaxLoansTier2, t.MaxLoansTier3,
		t.MaxPrincipalTier1, t.MaxPrincipalTier2, t.MaxPrincipalTier3)
	fmt.Fprintf(out, "  Loans: term <= %d months, APR %.2f%%..%.2f%%\n",
		cfg.Loans.MaxTermMonths, cfg.Loans.APRMin*100, cfg.Loans.APRMax*100)
	fmt.Fprintf(out, "  Script: %d steps\n", len(cfg.Simulation.Steps))
	fmt.Fprintf(out, "  Journal: %s  Store: %s\n", orNone(cfg.Journal.Type), orNone(cfg.Store.Type))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
