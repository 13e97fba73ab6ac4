package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smart-assistant/internal/audit"
	"smart-assistant/internal/usage"
)

func (c *cli) newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show token usage per model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			rec := usage.New(c.l, cfg.Assistant.UsagePath)
			if c.jsonOutput {
				return c.printJSON(rec.Snapshot())
			}
			lines := rec.SummaryLines()
			if len(lines) == 0 {
				c.println("No usage recorded yet.")
				return nil
			}
			for _, line := range lines {
				c.println(line)
			}
			return nil
		},
	}
}

func (c *cli) newListsCmd() *cobra.Command {
	lists := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and provision task lists",
	}

	lists.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the remote task lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.app(ctx)
			if err != nil {
				return err
			}
			if a.ListBackend == nil {
				return fmt.Errorf("task lists are not available for this backend")
			}

			remote, err := a.ListBackend.ListLists(ctx)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(remote)
			}
			for _, l := range remote {
				c.printf("%-30s %s\n", l.Name, l.ID)
			}
			return nil
		},
	})

	lists.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Create the configured preset lists, up to the list cap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.app(ctx)
			if err != nil {
				return err
			}
			if err := a.EnsurePresets(ctx); err != nil {
				return err
			}
			c.printf("Presets ensured: %v (cap %d)\n", a.Lists.Presets(), a.Lists.MaxLists())
			return nil
		},
	})
	return lists
}

func (c *cli) newAuditCmd() *cobra.Command {
	var (
		logType string
		since   time.Duration
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			auditLog, err := audit.New(c.l, audit.Config{
				Dir:           cfg.Assistant.AuditDir,
				RetentionDays: cfg.Assistant.AuditRetentionDays,
			})
			if err != nil {
				return err
			}

			to := time.Now()
			entries, err := auditLog.Query(cmd.Context(), logType, to.Add(-since), to, limit)
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(entries)
			}
			for _, e := range entries {
				c.printf("%s %s %s\n", e.Timestamp.Format(time.RFC3339), e.Type, summarize(logType, e))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&logType, "type", "t", audit.TypeInteractions, "Log type: interactions, errors, events or api_usage")
	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "How far back to look")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	return cmd
}

func summarize(logType string, e audit.Entry) string {
	switch logType {
	case audit.TypeErrors:
		return fmt.Sprintf("[%s] %s", e.ErrorType, e.ErrorMessage)
	case audit.TypeEvents:
		return fmt.Sprintf("[%s] %s", e.EventType, e.Description)
	case audit.TypeAPIUsage:
		return fmt.Sprintf("%s prompt=%d completion=%d total=%d", e.Model, e.PromptTokens, e.CompletionTokens, e.TotalTokens)
	default:
		ok := e.Success != nil && *e.Success
		return fmt.Sprintf("user=%s source=%s ok=%t %q", e.UserID, e.Source, ok, e.Input)
	}
}
