package shared

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR" default:"0.0.0.0:5000"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	RateLimitRPS   int           `envconfig:"RATE_LIMIT_RPS" default:"0"`

	DataPath     string `envconfig:"DATA_PATH" default:"House_price.csv"`
	PipelinePath string `envconfig:"PIPELINE_PATH" default:"house_price_pipeline.json.gz"`

	// optional stores; empty disables them
	MySQLDSN  string        `envconfig:"MYSQL_DSN"`
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	TrainTrees          int     `envconfig:"TRAIN_TREES" default:"100"`
	TrainSeed           int64   `envconfig:"TRAIN_SEED" default:"42"`
	TrainTestRatio      float64 `envconfig:"TRAIN_TEST_RATIO" default:"0.2"`
	TrainWorkers        int     `envconfig:"TRAIN_WORKERS" default:"0"`
	TrainMaxDepth       int     `envconfig:"TRAIN_MAX_DEPTH" default:"0"`
	TrainMinSamplesLeaf int     `envconfig:"TRAIN_MIN_SAMPLES_LEAF" default:"1"`
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}
	c, err := Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return c
}

// Parse reads the configuration from the environment only.
func Parse() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.TrainTestRatio <= 0 || c.TrainTestRatio >= 1 {
		log.Warn().Float64("ratio", c.TrainTestRatio).Msg("TRAIN_TEST_RATIO out of range; using 0.2")
		c.TrainTestRatio = 0.2
	}
	if c.TrainTrees <= 0 {
		log.Warn().Int("trees", c.TrainTrees).Msg("TRAIN_TREES must be positive; using 100")
		c.TrainTrees = 100
	}
	return c, nil
}
