package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spacesweep-dev/spacesweep/internal/config"
	"github.com/spacesweep-dev/spacesweep/internal/logger"
	"github.com/spacesweep-dev/spacesweep/internal/starling"
)

// session holds everything a command needs to talk to the ledger. It is built
// per invocation and passed down explicitly; nothing reads ambient globals.
type session struct {
	cfg    *config.Config
	client *starling.Client
	log    zerolog.Logger
}

func newSession(configPath string, verbose bool) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	env, err := starling.ParseEnvironment(cfg.API.Environment)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = env.BaseURL()
	}

	token, err := cfg.Token()
	if err != nil {
		return nil, err
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := logger.New(level)

	return &session{
		cfg:    cfg,
		client: starling.New(baseURL, token, log),
		log:    log,
	}, nil
}
