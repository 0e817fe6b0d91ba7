package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gifbox/filter"
	"github.com/s0up4200/gifbox/format"
	"github.com/s0up4200/gifbox/giphy"
)

var (
	exportFormat string
	exportOutput string
	favFilter    string
	favPreset    string
	favDetails   bool
)

var favouritesCmd = &cobra.Command{
	Use:     "favourites",
	Aliases: []string{"favorites", "fav"},
	Short:   "Manage the local favourites list",
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favourites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := presets.Resolve(favFilter, favPreset)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}

		items := state.Favourites()
		shown := filter.Apply(f, items)

		p := format.NewPrinter(cmd.OutOrStdout(), format.WithVerbose(favDetails))
		p.Heading("favourites")
		p.Media(shown)
		p.Summary(len(shown), len(items))
		return nil
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Look up GIFs by id and add them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		out := cmd.OutOrStdout()

		for _, id := range args {
			if state.IsFavourite(id) {
				fmt.Fprintf(out, "%s is already a favourite\n", id)
				continue
			}

			res := client.GetByID(ctx, id)
			if err := res.Err(); err != nil {
				return fmt.Errorf("failed to look up %s: %w", id, err)
			}

			m := res.Data.ToMedia()
			if _, err := state.AddFavourite(m); err != nil {
				return err
			}
			logger.Info().Str("id", m.ID).Str("slug", m.Slug).Msg("Added favourite")
			fmt.Fprintf(out, "Added %s (%s)\n", m.ID, m.Title)
		}
		return nil
	},
}

var favRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove favourites by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, id := range args {
			removed, err := state.RemoveFavourite(id)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(out, "%s is not a favourite\n", id)
				continue
			}
			fmt.Fprintf(out, "Removed %s\n", id)
		}
		return nil
	},
}

var favClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favourites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := len(state.Favourites())
		if err := state.ClearFavourites(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d favourites\n", n)
		return nil
	},
}

var favExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export favourites as JSON, YAML or Markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmtName, err := format.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		items := state.Favourites()
		if exportOutput != "" && exportOutput != "-" {
			err = exportFile(exportOutput, fmtName, items)
		} else {
			err = format.Export(cmd.OutOrStdout(), fmtName, items)
		}
		if err != nil {
			return fmt.Errorf("failed to export favourites: %w", err)
		}

		logger.Debug().Str("format", string(fmtName)).Int("count", len(items)).Msg("Exported favourites")
		return nil
	},
}

// exportFile writes items to path, including any error from closing it
func exportFile(path string, f format.ExportFormat, items []giphy.Media) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return format.Export(file, f, items)
}

func init() {
	favListCmd.Flags().StringVarP(&favFilter, "filter", "f", "", "filter expression")
	favListCmd.Flags().StringVarP(&favPreset, "preset", "p", "", "use a preset filter from config")
	favListCmd.Flags().BoolVar(&favDetails, "details", false, "show links, sizes and uploaders")

	favExportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json, yaml or markdown")
	favExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	favouritesCmd.AddCommand(favListCmd, favAddCmd, favRemoveCmd, favClearCmd, favExportCmd)
	rootCmd.AddCommand(favouritesCmd)
}
