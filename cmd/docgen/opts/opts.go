// Package opts holds the options shared by all docgen commands.
package opts

import (
	"os"

	"github.com/walteh/docgen/pkg/config"
	"github.com/walteh/docgen/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Environment variables consulted when --from-env is set. Only the CLI
// layer reads the process environment; the engine receives explicit
// configuration.
const (
	EnvAPIKey = "DOCGEN_API_KEY"
	EnvAPIURL = "DOCGEN_API_URL"
)

// RootOpts carries the dependencies shared by subcommands
type RootOpts struct {
	// File is the optional config file, nil when absent
	File *config.FileConfig
	// Reporter prints user-facing status lines
	Reporter *status.Reporter
}

// CredentialsFromEnv reads the API credentials from the environment. It
// fails with a descriptive error when neither variable is set, before any
// generation work starts.
func CredentialsFromEnv() (key string, url string, err error) {
	key = os.Getenv(EnvAPIKey)
	url = os.Getenv(EnvAPIURL)
	if key == "" && url == "" {
		return "", "", errors.Errorf("neither %s nor %s is set; set them or pass --api-key/--api-url", EnvAPIKey, EnvAPIURL)
	}
	return key, url, nil
}

// ApplyFile fills empty request fields from the loaded config file
func (o *RootOpts) ApplyFile(req *config.Request) {
	if o.File != nil {
		o.File.ApplyTo(req)
	}
}
