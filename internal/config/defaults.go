package config

const (
	defaultConfigPath    = "~/.config/reel/config.toml"
	defaultDataDir       = "~/.local/share/reel"
	defaultLogDir        = "~/.local/share/reel/logs"
	defaultFrameRate     = 30.0
	defaultWidth         = 1920
	defaultHeight        = 1080
	defaultUndoLimit     = 200
	defaultSampleWorkers = 4
	defaultFFprobe       = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	databaseFileName = "reel.db"
	lockFileName     = "reel.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Project: Project{
			FrameRate: defaultFrameRate,
			Width:     defaultWidth,
			Height:    defaultHeight,
		},
		History: History{
			UndoLimit: defaultUndoLimit,
		},
		Sampling: Sampling{
			Workers: defaultSampleWorkers,
		},
		Media: Media{
			FFprobeBinary: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
