package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/gifbox/feed"
	"github.com/s0up4200/gifbox/format"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [term]",
	Short: "Show search suggestions",
	Long: `Show tags related to a term. Without a term, read queries line by line
from stdin and print suggestions once typing pauses.`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	p := format.NewPrinter(out)

	if len(args) > 0 {
		s := feed.NewSuggester(ctx, client, state, cfg.Browse.Debounce, logger, nil)
		defer s.Close()

		s.Type(strings.Join(args, " "))
		s.Flush()
		p.Terms(s.Suggestions())
		return nil
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	fmt.Fprintf(out, "Type a query (%s), Ctrl-D to quit\n", feed.RandomPhrase(rng))

	var printMu sync.Mutex
	s := feed.NewSuggester(ctx, client, state, cfg.Browse.Debounce, logger, func(query string, suggestions []string) {
		printMu.Lock()
		defer printMu.Unlock()
		p.Heading("suggestions for " + query)
		p.Terms(suggestions)
	})
	defer s.Close()

	return readQueries(cmd.InOrStdin(), s)
}

// readQueries feeds every line to the suggester. At end of input the
// pending fetch is flushed and a running one is awaited, so the last query
// is not lost when the suggester is closed.
func readQueries(in io.Reader, s *feed.Suggester) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		s.Type(strings.TrimSpace(scanner.Text()))
	}
	s.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
