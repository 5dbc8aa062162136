package config

const (
	defaultConfigPath    = "~/.config/qrcmigrate/config.toml"
	projectConfigName    = "qrcmigrate.toml"
	defaultPrefix        = "/"
	defaultFileTag       = "file"
	defaultEntryIndent   = "\n        "
	defaultClosingIndent = "\n    "
	defaultAtomicWrite   = true
	defaultLockWrite     = true
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Descriptor: Descriptor{
			Prefix:        defaultPrefix,
			FileTag:       defaultFileTag,
			EntryIndent:   defaultEntryIndent,
			ClosingIndent: defaultClosingIndent,
		},
		Write: Write{
			Atomic: defaultAtomicWrite,
			Lock:   defaultLockWrite,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
