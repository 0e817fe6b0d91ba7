package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/s0up4200/gifbox/config"
	"github.com/s0up4200/gifbox/filter"
	"github.com/s0up4200/gifbox/giphy"
	"github.com/s0up4200/gifbox/storage"
	"github.com/s0up4200/gifbox/store"
)

// skipInit marks commands that run without config, API client or storage
const skipInit = "gifbox/skip-init"

var (
	cfgFile string
	noStore bool

	cfg     *config.Config
	logger  = zerolog.Nop()
	client  *giphy.Client
	backend interface {
		store.Storage
		Close() error
	}
	state   *store.State
	presets *filter.Presets
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gifbox",
	Short: "Browse, search and collect GIPHY GIFs and stickers from the terminal",
	Long: `gifbox is a CLI for GIPHY. It lists trending GIFs and stickers, searches
with debounced suggestions, and keeps a local list of favourites.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if closeErr := shutdownApp(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-persist", false, "keep favourites in memory for this run only")
}

// initializeApp loads the configuration and builds the client, storage and state
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInit] != "" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile, build)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = giphy.NewClient(cfg.Giphy.BaseURL, cfg.Giphy.APIKey, logger,
		giphy.WithTimeout(cfg.Giphy.Timeout),
		giphy.WithRateLimit(rate.Limit(cfg.Giphy.RateLimit), cfg.Giphy.RateBurst),
		giphy.WithUserAgent("gifbox/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create GIPHY client: %w", err)
	}

	if noStore {
		backend = storage.NewMemory()
	} else {
		dir := cfg.Storage.Path
		if dir == "" {
			dir = storage.DefaultDir()
		}
		db, err := storage.Open(dir)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug().Str("path", db.Path()).Msg("Opened storage")
		backend = db
	}

	state, err = store.Open(backend, logger)
	if err != nil {
		return err
	}

	if err := state.SetTab(giphy.Kind(cfg.Browse.Kind)); err != nil {
		return err
	}

	compiler := filter.NewExprCompiler(filter.WithFavourites(state.IsFavourite))
	presets, err = filter.NewPresets(compiler, cfg.Filter.Presets, cfg.Filter.Default)
	if err != nil {
		return err
	}

	return nil
}

// shutdownApp closes the storage backend
func shutdownApp() error {
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colour only when stderr is an interactive terminal
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
