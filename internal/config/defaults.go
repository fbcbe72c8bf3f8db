package config

const (
	defaultOutputDir     = "~/organized"
	defaultLogDir        = "~/.local/share/docshelf/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultMinThreshold  = 92.0
	defaultFilenameBonus = 15.0
	defaultPathPenalty   = 10.0
	defaultMaxFileSizeMB = 1000.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Matching: Matching{
			MinThreshold:  defaultMinThreshold,
			FilenameBonus: defaultFilenameBonus,
			PathPenalty:   defaultPathPenalty,
		},
		Scanner: Scanner{
			ExcludeExtensions: []string{".tmp", ".temp", ".log"},
			ExcludeFolders: []string{
				"System Volume Information",
				"$RECYCLE.BIN",
				".git",
				".svn",
				"node_modules",
				"__pycache__",
			},
			MaxFileSizeMB: defaultMaxFileSizeMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
