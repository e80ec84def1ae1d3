package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagLog    = flag.String("log", "", "Write logs to this file")
	flagSlices = flag.Int("slices", 0, "Default radial slices")
	flagStacks = flag.Int("stacks", 0, "Default sphere stacks")
	flagOut    = flag.String("out", "", "Export output path")
)

// ParseFlags parses command-line flags. Call this early in main().
// Parsing stops at the first non-flag argument, the subcommand.
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
	if *flagSlices > 0 {
		cfg.Geometry.Slices = *flagSlices
	}
	if *flagStacks > 0 {
		cfg.Geometry.Stacks = *flagStacks
	}
	if *flagOut != "" {
		cfg.Export.Path = *flagOut
	}
}
