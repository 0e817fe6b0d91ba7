package main

import (
	"github.com/s0up4200/gifbox/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"

	// injected with -ldflags "-X main.apiKey=... -X main.baseURL=..."
	apiKey  = ""
	baseURL = ""
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.SetBuildDefaults(apiKey, baseURL)
	cmd.Execute()
}
