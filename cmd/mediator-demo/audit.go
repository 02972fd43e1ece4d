package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/mediator-go/audit"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

// NewAuditCommand creates the audit subcommand
func NewAuditCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent dispatch audit records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			return showAudit(cfg, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")

	return cmd
}

func showAudit(cfg *config.Config, limit int) error {
	store, err := audit.NewStore(&audit.Config{
		Type: cfg.Audit.Type,
		Path: cfg.Audit.Path,
		DSN:  cfg.Audit.DSN,
	})
	if err != nil {
		return err
	}

	records, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No audit records.")
		return nil
	}

	for _, record := range records {
		line := fmt.Sprintf("%s  %-24s %-8s %4dms",
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.RequestType,
			record.Status,
			record.DurationMs,
		)
		if record.Error != "" {
			line += "  " + record.Error
		}
		fmt.Println(line)
	}

	return nil
}
