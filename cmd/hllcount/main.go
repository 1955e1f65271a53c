// Command hllcount estimates the number of distinct lines read from a file or stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/colega/hyperloglog"
)

var stringHashes = map[string]hyperloglog.HashFunc[string]{
	"xxhash":  hyperloglog.XXHashString,
	"murmur3": hyperloglog.Murmur3String,
	"metro":   hyperloglog.MetroString,
	"fnv1a":   hyperloglog.FNV1aString,
}

func main() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	cfg := Config{}
	// Defaults come from the flags and must be set before the config file is read.
	cfg.RegisterFlags(flag.CommandLine)

	if configFile := parseConfigFileParameter(os.Args[1:]); configFile != "" {
		if err := LoadConfig(configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error loading config from %s: %v\n", configFile, err)
			os.Exit(1)
		}
	}
	// Already handled above, registered so that parsing accepts it.
	flag.CommandLine.String(configFileOption, "", "Configuration file to load.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel)

	in := io.Reader(os.Stdin)
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			level.Error(logger).Log("msg", "failed to open input", "file", cfg.Input, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	estimate, err := run(cfg, in, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to count keys", "err", err)
		os.Exit(1)
	}
	fmt.Printf("%.0f\n", estimate)
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// run feeds every line of r into the estimator described by cfg and returns the final estimate.
func run(cfg Config, r io.Reader, logger log.Logger) (float64, error) {
	switch cfg.KeyType {
	case keyTypeInt64:
		return count[int64](cfg, r, logger, hyperloglog.Murmur3Int64, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
	default:
		hash := hyperloglog.XXHashString
		if h, ok := stringHashes[cfg.Hash]; ok {
			hash = h
		}
		return count[string](cfg, r, logger, hash, func(s string) (string, error) {
			return s, nil
		})
	}
}

func newEstimator[K any](cfg Config, hash hyperloglog.HashFunc[K]) (hyperloglog.Estimator[K], error) {
	if cfg.Algorithm == algorithmPresto {
		h, err := hyperloglog.NewPresto[K](cfg.Precision, hash)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	h, err := hyperloglog.New[K](cfg.Precision, hash)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func count[K any](cfg Config, r io.Reader, logger log.Logger, hash hyperloglog.HashFunc[K], parse func(string) (K, error)) (float64, error) {
	est, err := newEstimator[K](cfg, hash)
	if err != nil {
		return 0, errors.Wrap(err, "creating estimator")
	}
	level.Debug(logger).Log("msg", "created estimator", "algorithm", cfg.Algorithm, "buckets", est.NumBuckets())

	var keys, skipped, line int
	s := bufio.NewScanner(r)
	for s.Scan() {
		line++
		key, err := parse(s.Text())
		if err != nil {
			level.Warn(logger).Log("msg", "skipping unparsable key", "line", line, "err", err)
			skipped++
			continue
		}

		est.Add(key)
		keys++
		if cfg.ReportEvery > 0 && keys%cfg.ReportEvery == 0 {
			level.Info(logger).Log("msg", "progress", "keys", keys, "estimate", est.ComputeCardinality())
		}
	}
	if err := s.Err(); err != nil {
		return 0, errors.Wrap(err, "reading keys")
	}

	estimate := est.ComputeCardinality()
	level.Info(logger).Log("msg", "done", "keys", keys, "skipped", skipped, "estimate", estimate)
	return estimate, nil
}
