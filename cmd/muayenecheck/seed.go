package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kochuseyin65/muayane/internal/seed"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a sample equipment with a rich inspection template",
		RunE:  seedExecute,
	}
	flags := cmd.Flags()
	flags.String("name", "Örnek Ekipman - Kule Vinç", "equipment name")
	flags.String("type", "Kule Vinç", "equipment type")
	flags.String("template", "", "YAML template file overriding the built-in sample")
	return cmd
}

func seedExecute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	equipmentType, _ := flags.GetString("type")
	templatePath, _ := flags.GetString("template")

	tpl := seed.BuildTemplate()
	if templatePath != "" {
		tpl, err = seed.LoadTemplate(templatePath)
		if err != nil {
			return err
		}
	}

	created, err := seed.New(cfg.BaseURL, logger).Run(cfg.AdminEmail, cfg.AdminPassword, name, equipmentType, tpl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Success: equipment created.")
	pretty, err := json.MarshalIndent(created, "", "  ")
	if err != nil {
		return fmt.Errorf("render created equipment: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	return nil
}
