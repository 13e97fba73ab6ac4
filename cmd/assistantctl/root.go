package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"smart-assistant/config"
	"smart-assistant/internal/app"
	"smart-assistant/pkg/log"
)

// deps are the constructors the commands need; tests replace them.
type deps struct {
	loadConfig func() (*config.Config, error)
	build      func(ctx context.Context, cfg *config.Config, l log.Logger) (*app.App, error)
}

type cli struct {
	in         io.Reader
	out        io.Writer
	l          log.Logger
	d          deps
	jsonOutput bool
}

func newRootCmd(in io.Reader, out io.Writer, l log.Logger, d deps) *cobra.Command {
	c := &cli{in: in, out: out, l: l, d: d}

	root := &cobra.Command{
		Use:           "assistantctl",
		Short:         "Operate the smart assistant from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(in)
	root.PersistentFlags().BoolVarP(&c.jsonOutput, "json", "j", false, "Output as JSON")

	root.AddCommand(
		c.newParseCmd(),
		c.newAddCmd(),
		c.newTodayCmd(),
		c.newUsageCmd(),
		c.newListsCmd(),
		c.newAuditCmd(),
		c.newGoogleAuthCmd(),
	)
	return root
}

func (c *cli) config() (*config.Config, error) {
	cfg, err := c.d.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *cli) app(ctx context.Context) (*app.App, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return c.d.build(ctx, cfg, c.l)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *cli) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
