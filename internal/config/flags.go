package config

import "flag"

var (
	flagConfig           = flag.String("config", "", "Path to config file")
	flagDebug            = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile          = flag.String("log-file", "", "Write logs to this file as well")
	flagMetadata         = flag.Bool("metadata", false, "Write type and GlobalId comments before each group")
	flagTransformNormals = flag.Bool("transform-normals", false, "Transform normals with the inverse-transpose matrix")
	flagSkipMalformed    = flag.Bool("skip-malformed", false, "Skip elements with malformed geometry")
	flagStrict           = flag.Bool("strict", false, "Abort on malformed geometry")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
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
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMetadata {
		cfg.Export.Metadata = true
	}
	if *flagTransformNormals {
		cfg.Export.TransformNormals = true
	}
	if *flagSkipMalformed {
		cfg.Export.SkipMalformed = true
	}
	if *flagStrict {
		cfg.Export.SkipMalformed = false
	}
}
