package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gifbox/feed"
	"github.com/s0up4200/gifbox/filter"
	"github.com/s0up4200/gifbox/format"
	"github.com/s0up4200/gifbox/giphy"
)

// browseFlags are shared by trending and search
type browseFlags struct {
	stickers bool
	limit    int
	pages    int
	rating   string
	filter   string
	preset   string
	details  bool
}

func (b *browseFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&b.stickers, "stickers", false, "list stickers instead of GIFs")
	cmd.Flags().IntVarP(&b.limit, "limit", "n", 0, "items per page (default from config)")
	cmd.Flags().IntVar(&b.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVar(&b.rating, "rating", "", "content rating: "+ratingNames())
	cmd.Flags().StringVarP(&b.filter, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&b.preset, "preset", "p", "", "use a preset filter from config")
	cmd.Flags().BoolVar(&b.details, "details", false, "show links, sizes and uploaders")
}

// ratingNames lists the accepted --rating values
func ratingNames() string {
	names := make([]string, len(giphy.Ratings))
	for i, r := range giphy.Ratings {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// resolve applies the flags on top of the configured defaults
func (b *browseFlags) resolve() (giphy.Rating, filter.CompiledFilter, []feed.Option, error) {
	if b.stickers {
		if err := state.SetTab(giphy.KindStickers); err != nil {
			return "", nil, nil, err
		}
	}

	ratingName := cfg.Browse.Rating
	if b.rating != "" {
		ratingName = b.rating
	}
	rating, err := giphy.ParseRating(ratingName)
	if err != nil {
		return "", nil, nil, err
	}

	limit := cfg.Browse.Limit
	if b.limit > 0 {
		limit = b.limit
	}

	f, err := presets.Resolve(b.filter, b.preset)
	if err != nil {
		return "", nil, nil, fmt.Errorf("invalid filter: %w", err)
	}

	return rating, f, []feed.Option{feed.WithLimit(limit), feed.WithLogger(logger)}, nil
}

var trendingFlags browseFlags

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending GIFs or stickers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, f, opts, err := trendingFlags.resolve()
		if err != nil {
			return err
		}

		view := feed.NewTrending(client, state, rating, opts...)
		defer view.Close()

		heading := "trending " + state.Tab().String()
		return runBrowse(cmd.Context(), cmd, view, heading, f, trendingFlags)
	},
}

var searchFlags browseFlags

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search GIFs or stickers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, f, opts, err := searchFlags.resolve()
		if err != nil {
			return err
		}

		term := feed.PathTerm(strings.Join(args, " "))
		view, err := feed.NewSearch(client, state, term, rating, opts...)
		if err != nil {
			return err
		}
		defer view.Close()

		heading := state.SearchQuery() + " " + state.Tab().String()
		return runBrowse(cmd.Context(), cmd, view, heading, f, searchFlags)
	},
}

func init() {
	trendingFlags.register(trendingCmd)
	searchFlags.register(searchCmd)

	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(searchCmd)
}

func runBrowse(ctx context.Context, cmd *cobra.Command, view *feed.Feed, heading string, f filter.CompiledFilter, flags browseFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info().
		Str("tab", state.Tab().String()).
		Int("limit", view.Limit()).
		Int("pages", flags.pages).
		Msg("Fetching feed")

	if err := collectPages(ctx, view, flags.pages); err != nil {
		return err
	}

	items := view.Items()
	shown := filter.Apply(f, items)

	p := format.NewPrinter(cmd.OutOrStdout(),
		format.WithVerbose(flags.details),
		format.WithFavourites(state.IsFavourite),
	)
	p.Heading(heading)
	p.Media(shown)
	p.Summary(len(shown), len(items))

	return nil
}

// collectPages loads the first page and then up to pages-1 more. It stops
// early once a page adds nothing. A failure after the first page is reported but
// keeps what was loaded.
func collectPages(ctx context.Context, view *feed.Feed, pages int) error {
	if err := view.Sync(ctx); err != nil {
		return fmt.Errorf("failed to load feed: %w", err)
	}

	for i := 1; i < pages; i++ {
		before := len(view.Items())
		if err := view.FetchMore(ctx); err != nil {
			logger.Warn().Err(err).Int("page", i+1).Msg("Stopped paging after error")
			return nil
		}
		if len(view.Items()) == before {
			break
		}
	}

	return nil
}
