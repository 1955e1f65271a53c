package main

import (
	"bytes"
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	algorithmClassic = "classic"
	algorithmPresto  = "presto"

	keyTypeString = "string"
	keyTypeInt64  = "int64"

	configFileOption = "config.file"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Config for hllcount. Every field can be set from the YAML file given by
// -config.file and overridden on the command line.
type Config struct {
	Algorithm   string `yaml:"algorithm"`
	Precision   int    `yaml:"precision"`
	KeyType     string `yaml:"key_type"`
	Hash        string `yaml:"hash"`
	Input       string `yaml:"input"`
	ReportEvery int    `yaml:"report_every"`
	LogLevel    string `yaml:"log_level"`
}

func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.Algorithm, "algorithm", algorithmClassic, "Estimator to use: classic or presto.")
	f.IntVar(&c.Precision, "precision", 14, "Number of leading hash bits selecting a bucket. Values below 0 are treated as 0.")
	f.StringVar(&c.KeyType, "key-type", keyTypeString, "How to interpret each input line: string or int64.")
	f.StringVar(&c.Hash, "hash", "", "Hash function: xxhash, murmur3, metro or fnv1a. Empty selects the default for the key type. int64 keys only support murmur3.")
	f.StringVar(&c.Input, "input", "", "File to read keys from, one per line. Reads stdin when empty.")
	f.IntVar(&c.ReportEvery, "report-every", 100000, "Log the running estimate every N keys. 0 disables progress logging.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Only log messages with the given severity or above: debug, info, warn, error.")
}

func (c *Config) Validate() error {
	switch c.Algorithm {
	case algorithmClassic, algorithmPresto:
	default:
		return errors.Errorf("unknown algorithm %q", c.Algorithm)
	}

	switch c.KeyType {
	case keyTypeString:
		if _, ok := stringHashes[c.Hash]; !ok && c.Hash != "" {
			return errors.Errorf("unknown hash %q", c.Hash)
		}
	case keyTypeInt64:
		if c.Hash != "" && c.Hash != "murmur3" {
			return errors.Errorf("hash %q is not supported for int64 keys", c.Hash)
		}
	default:
		return errors.Errorf("unknown key type %q", c.KeyType)
	}

	if c.ReportEvery < 0 {
		return errors.New("report every must not be negative")
	}

	for _, l := range logLevels {
		if c.LogLevel == l {
			return nil
		}
	}
	return errors.Errorf("unknown log level %q", c.LogLevel)
}

// parseConfigFileParameter finds -config.file in args without touching the main flag set.
func parseConfigFileParameter(args []string) (configFile string) {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configFile, configFileOption, "", "")

	// Parsing stops on the first unknown flag, so retry from every position.
	for len(args) > 0 {
		_ = fs.Parse(args)
		args = args[1:]
	}
	return
}

// LoadConfig reads YAML-formatted config from filename into cfg.
func LoadConfig(filename string, cfg *Config) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "Error reading config file")
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "Error parsing config file")
	}
	return nil
}
