package config

import (
	"flag"
	"io"
	"time"

	"github.com/gnode/gcaeditor/internal/flagx"
)

var knownFlags = []string{
	"-a", "-t", "-timeout", "-rps", "-d", "-l", "-conference", "-abstract",
}

// parseFlags overrides cfg with the flags it knows about and ignores the
// rest of args.
//
//	-a string           server base URL
//	-t string           bearer token
//	-timeout int        request timeout in seconds
//	-rps float          requests per second, 0 disables throttling
//	-d string           drafts database file
//	-l string           log level (debug, info, warn, error)
//	-conference string  conference of a new abstract
//	-abstract string    abstract to edit
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("gcaeditor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.Token, "t", cfg.Token, "bearer token")
	timeout := fs.Int("timeout", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "rps", cfg.RequestsPerSecond, "requests per second")
	fs.StringVar(&cfg.DraftsPath, "d", cfg.DraftsPath, "drafts database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.ConferenceID, "conference", cfg.ConferenceID, "conference uuid")
	fs.StringVar(&cfg.AbstractID, "abstract", cfg.AbstractID, "abstract uuid")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "timeout" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
