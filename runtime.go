package metasim

import (
	"io"

	"github.com/metasim/metasim.go/batchcloser"
	"github.com/metasim/metasim.go/breakersim"
	"github.com/metasim/metasim.go/configsim"
	"github.com/metasim/metasim.go/log"
	"github.com/metasim/metasim.go/randsim"
)

// Config is the root host configuration,
// usually parsed from a YAML file via ParseConfig.
type Config struct {
	// Seed, when set, seeds the process-global generator randsim.R,
	// making auto-seeded randomizers reproducible across the whole run.
	//
	// It's a string in YAML so seeds surviving a templating system don't
	// lose precision.
	Seed *configsim.Int64String `yaml:"seed"`

	// Log configures the global logger.
	Log log.Config `yaml:"log"`

	// Sentry configures error reporting.
	//
	// The zero value disables it.
	Sentry log.SentryConfig `yaml:"sentry"`

	// Settle is the default settle barrier configuration handed to
	// randomizers by the host.
	Settle SettleConfig `yaml:"settle"`

	// Breaker, when set, builds a failure-ratio breaker guarding the
	// settle barrier's collaborator waits.
	Breaker *breakersim.Config `yaml:"breaker"`
}

// ParseConfig parses the YAML file at path into a Config,
// strictly: unknown fields are errors.
//
// If path is empty, configsim.ConfigPath is used.
func ParseConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		path = configsim.ConfigPath
	}
	if err := configsim.ParseStrictFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// New initializes the process-global pieces of the library from the config
// file at path: the logger, Sentry reporting, and the settle breaker.
//
// The returned closer flushes Sentry and should be deferred by main.
func New(path string) (Config, io.Closer, error) {
	cfg, err := ParseConfig(path)
	if err != nil {
		return Config{}, nil, err
	}
	log.InitFromConfig(cfg.Log)
	sentryCloser, err := log.InitSentry(cfg.Sentry)
	if err != nil {
		return Config{}, nil, err
	}
	if cfg.Seed != nil {
		randsim.R.Seed(int64(*cfg.Seed))
	}
	if cfg.Breaker != nil {
		cfg.Settle.Breaker = breakersim.NewFailureRatioBreaker(*cfg.Breaker)
	}
	closer := batchcloser.New(
		sentryCloser,
		batchcloser.Wrap(log.Sync),
	)
	return cfg, closer, nil
}
