package config

import (
	"fmt"

	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/logger"
)

// Loader resolves configuration with layered precedence.
type Loader struct {
	log *logger.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{log: log}
}

// Load builds the configuration:
//  1. defaults
//  2. the YAML file (explicitPath, or DefaultPath when empty)
//  3. APERTURE_* environment variables
//  4. standard vendor keys (OPENROUTER_API_KEY, ...) when the selected
//     provider still has no key
//
// An explicit path that does not exist is an error; a missing default file
// is not.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			l.log.Debug("loaded config file", "path", path)
			cfg = fileCfg
		case isNotExist(err) && explicitPath == "":
			l.log.Debug("no config file", "path", path)
		default:
			return nil, err
		}
	}

	cfg.ApplyEnv()

	if !cfg.LLM.HasKey() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			l.log.Debug("using discovered LLM provider", "provider", discovered.Provider)
			discovered.Timeout = cfg.LLM.Timeout
			cfg.LLM = discovered
		}
	}

	if cfg.Progress.Path == "" {
		cfg.Progress.Path = DefaultProgressFile()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
