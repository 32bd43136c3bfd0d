package config

import "github.com/spf13/pflag"

var (
	flagConfig  = new(string)
	flagDebug   = new(bool)
	flagScene   = new(string)
	flagDocDir  = new(string)
	flagLogFile = new(string)
)

// BindFlags registers the configuration flags on fs, typically the root
// command's persistent flags.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(flagConfig, "config", "", "Path to config file")
	fs.BoolVar(flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(flagScene, "scene", "", "Scene file holding the mesh objects")
	fs.StringVar(flagDocDir, "dir", "", "Directory for weight documents")
	fs.StringVar(flagLogFile, "log-file", "", "Also write logs to this file")
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
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagDocDir != "" {
		cfg.Documents.Dir = *flagDocDir
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
