package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/model"
)

func (c *cli) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Show what a message would create, without writing anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.app(ctx)
			if err != nil {
				return err
			}

			sc := model.NewScope(model.SourceCLI, "cli", "")
			items, err := a.Assistant.PreviewText(ctx, sc, assistant.ProcessTextInput{Text: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(items)
			}
			if items.Empty() {
				c.println("Nothing found.")
				return nil
			}
			for _, ev := range items.Events {
				c.printf("event  %s (color %s)\n", ev.HumanReadable(), orDash(ev.ColorID))
			}
			for _, t := range items.Tasks {
				c.printf("task   %s\n", t.HumanReadable())
			}
			return nil
		},
	}
}

func (c *cli) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Create the events and tasks found in a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.app(ctx)
			if err != nil {
				return err
			}

			sc := model.NewScope(model.SourceCLI, "cli", "")
			result := a.Assistant.ProcessText(ctx, sc, assistant.ProcessTextInput{Text: strings.Join(args, " ")})

			if c.jsonOutput {
				if err := c.printJSON(result); err != nil {
					return err
				}
			} else {
				c.println(result.Message)
				for i, ev := range result.Events {
					c.printf("event  %s %s\n", ev.HumanReadable(), linkAt(result.CalendarLinks, i))
				}
				for i, t := range result.Tasks {
					c.printf("task   %s %s\n", t.HumanReadable(), linkAt(result.TaskLinks, i))
				}
			}
			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}
}

func (c *cli) newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List today's calendar events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.app(ctx)
			if err != nil {
				return err
			}

			out, err := a.Assistant.ListToday(ctx, model.NewScope(model.SourceCLI, "cli", ""))
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(out)
			}
			c.printf("%s: %d events\n", out.Date, len(out.Events))
			for _, ev := range out.Events {
				c.printf("  %s\n", ev.HumanReadable())
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func linkAt(links []string, i int) string {
	if i < len(links) {
		return links[i]
	}
	return ""
}
