package config

const (
	defaultConfigPath       = "~/.config/vidq/config.toml"
	projectConfigName       = "vidq.toml"
	defaultOutputDir        = "downloads"
	defaultMaxRetries       = 5
	defaultFragments        = 4
	defaultAutoProxy        = true
	defaultBinary           = "yt-dlp"
	defaultPlaylistSource   = PlaylistSourceYTDLP
	defaultSocketTimeout    = 30
	defaultExtractorRetries = 5
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Playlist listing backends.
const (
	PlaylistSourceYTDLP  = "ytdlp"
	PlaylistSourceNative = "native"
)

// Environment variables consulted during normalization. Set values take
// precedence over the config file.
const (
	EnvOutputDir = "VIDQ_OUTPUT_DIR"
	EnvProxy     = "VIDQ_PROXY"
	EnvBinary    = "VIDQ_YTDLP_BINARY"
	EnvLogLevel  = "VIDQ_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Download: Download{
			MaxRetries: defaultMaxRetries,
			Fragments:  defaultFragments,
			AutoProxy:  defaultAutoProxy,
		},
		Engine: Engine{
			Binary:           defaultBinary,
			PlaylistSource:   defaultPlaylistSource,
			SocketTimeout:    defaultSocketTimeout,
			ExtractorRetries: defaultExtractorRetries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
