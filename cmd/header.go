package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gifbox/feed"
	"github.com/s0up4200/gifbox/format"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Show a random trending sticker and the top trending searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		h := feed.NewHeader(client, state, logger, nil)
		if err := h.Load(ctx); err != nil {
			logger.Warn().Err(err).Msg("Header sticker unavailable")
		}

		out := cmd.OutOrStdout()
		p := format.NewPrinter(out)

		p.Heading("sticker")
		if media := state.HeaderMedia(); media != "" {
			fmt.Fprintln(out, media)
		} else {
			fmt.Fprintln(out, "No sticker this time.")
		}

		p.Heading("trending searches")
		p.Terms(h.TrendingSearches())
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the connection and API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Testing connection to GIPHY at %s...\n", client.BaseURL())
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("connection failed: %w", err)
		}
		fmt.Fprintln(out, "✓ Connection successful")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(pingCmd)
}
