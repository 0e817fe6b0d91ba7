package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/gifbox/config"
)

const defaultRepository = "s0up4200/gifbox"

var (
	version   = "dev"
	buildTime = "unknown"
	build     config.Build

	checkOnly bool
)

// SetVersion records the version stamped into the binary
func SetVersion(v, t string) {
	version = v
	buildTime = t
}

// SetBuildDefaults records the API key and base URL stamped into the binary
func SetBuildDefaults(apiKey, baseURL string) {
	build = config.Build{APIKey: apiKey, BaseURL: baseURL}
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Annotations: map[string]string{skipInit: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gifbox %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
	},
}

var updateCmd = &cobra.Command{
	Use:         "update",
	Short:       "Update gifbox to the latest release",
	Annotations: map[string]string{skipInit: "true"},
	RunE:        runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a %q build, install a release instead", version)
	}

	repository := defaultRepository
	if loaded, err := config.Load(cfgFile, build); err == nil && loaded.Update.Repository != "" {
		repository = loaded.Update.Repository
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return errors.New("no release found for this platform")
	}

	out := cmd.OutOrStdout()
	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "gifbox %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "gifbox %s is available (current %s)\n", latest.Version(), current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "Updated gifbox %s -> %s\n", current, latest.Version())
	return nil
}
