package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-frame-inspector/internal/adapter"
	"github.com/feral-file/ff-frame-inspector/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// FFmpegConfig holds the external video decoder configuration
type FFmpegConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	// InputFlags are extra ffmpeg input options, shell-quoted (e.g. "-threads 2")
	InputFlags string `mapstructure:"input_flags"`
	// MaxFrames caps the frames read from one stream (0 = unlimited)
	MaxFrames int `mapstructure:"max_frames"`
}

// MediaConfig holds decoding and reporting configuration
type MediaConfig struct {
	// TempDir is where intermediate files are written (empty = OS temp dir)
	TempDir     string `mapstructure:"temp_dir"`
	VectorScale int    `mapstructure:"vector_scale"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
	// ReplyFormat is the encoding of the returned frame: jpeg or png
	ReplyFormat string `mapstructure:"reply_format"`
	// MaxDecodedPixels caps the declared area of one frame
	MaxDecodedPixels int64        `mapstructure:"max_decoded_pixels"`
	FFmpeg           FFmpegConfig `mapstructure:"ffmpeg"`
}

// Format returns the parsed reply format; validate has already rejected unknown names
func (c *MediaConfig) Format() adapter.ImageFormat {
	f, err := adapter.ParseImageFormat(c.ReplyFormat)
	if err != nil {
		return adapter.ImageFormatJPEG
	}
	return f
}

// DownloadConfig holds attachment download configuration
type DownloadConfig struct {
	MaxFileSize int64         `mapstructure:"max_file_size"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds bot API configuration
type TelegramConfig struct {
	Token string `mapstructure:"token"`
	// APIEndpoint overrides the bot API endpoint format, e.g. for a local bot API server
	APIEndpoint string `mapstructure:"api_endpoint"`
	PollTimeout int    `mapstructure:"poll_timeout"` // in seconds
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	MaxUploadSize  int64    `mapstructure:"max_upload_size"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BotConfig holds configuration for the Telegram bot
type BotConfig struct {
	BaseConfig `mapstructure:",squash"`
	Telegram   TelegramConfig `mapstructure:"telegram"`
	Download   DownloadConfig `mapstructure:"download"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Media      MediaConfig    `mapstructure:"media"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig `mapstructure:"server"`
	Worker     WorkerConfig `mapstructure:"worker"`
	Media      MediaConfig  `mapstructure:"media"`
}

// InspectConfig holds configuration for the inspect command
type InspectConfig struct {
	BaseConfig `mapstructure:",squash"`
	Media      MediaConfig `mapstructure:"media"`
}

// LoadBotConfig loads configuration for the Telegram bot
func LoadBotConfig(configFile string, envPath string) (*BotConfig, error) {
	v := configureViper("bot", configFile, envPath)

	// Set defaults
	setMediaDefaults(v)
	setWorkerDefaults(v)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("download.max_file_size", 20*1024*1024) // bot API download limit
	v.SetDefault("download.timeout", "60s")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config BotConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if config.Telegram.Token == "" {
		return nil, errors.New("telegram.token is required")
	}
	if config.Download.MaxFileSize <= 0 {
		return nil, errors.New("download.max_file_size must be positive")
	}
	if err := config.Media.validate(); err != nil {
		return nil, err
	}
	if err := config.Worker.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setMediaDefaults(v)
	setWorkerDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.max_upload_size", 50*1024*1024) // 50MB
	v.SetDefault("server.allowed_origins", []string{"*"})

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Server.MaxUploadSize <= 0 {
		return nil, errors.New("server.max_upload_size must be positive")
	}
	if err := config.Media.validate(); err != nil {
		return nil, err
	}
	if err := config.Worker.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadInspectConfig loads configuration for the inspect command
func LoadInspectConfig(configFile string, envPath string) (*InspectConfig, error) {
	v := configureViper("inspect", configFile, envPath)

	// Set defaults
	setMediaDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config InspectConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Media.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setMediaDefaults(v *viper.Viper) {
	v.SetDefault("media.vector_scale", 2)
	v.SetDefault("media.jpeg_quality", 90)
	v.SetDefault("media.reply_format", string(adapter.ImageFormatJPEG))
	v.SetDefault("media.max_decoded_pixels", domain.DEFAULT_MAX_DECODED_PIXELS)
	v.SetDefault("media.ffmpeg.ffmpeg_path", "ffmpeg")
	v.SetDefault("media.ffmpeg.ffprobe_path", "ffprobe")
	v.SetDefault("media.ffmpeg.max_frames", 0)
}

func setWorkerDefaults(v *viper.Viper) {
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 64)
}

func (c *MediaConfig) validate() error {
	if c.VectorScale < 1 {
		return fmt.Errorf("media.vector_scale must be at least 1: %d", c.VectorScale)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("media.jpeg_quality must be between 1 and 100: %d", c.JPEGQuality)
	}
	if _, err := adapter.ParseImageFormat(c.ReplyFormat); err != nil {
		return fmt.Errorf("media.reply_format: %w", err)
	}
	if c.MaxDecodedPixels < 1 {
		return fmt.Errorf("media.max_decoded_pixels must be at least 1: %d", c.MaxDecodedPixels)
	}
	if c.FFmpeg.MaxFrames < 0 {
		return fmt.Errorf("media.ffmpeg.max_frames must not be negative: %d", c.FFmpeg.MaxFrames)
	}
	return nil
}

func (c *WorkerConfig) validate() error {
	if c.WorkerPoolSize < 1 {
		return fmt.Errorf("worker.pool_size must be at least 1: %d", c.WorkerPoolSize)
	}
	if c.WorkerQueueSize < 0 {
		return fmt.Errorf("worker.queue_size must not be negative: %d", c.WorkerQueueSize)
	}
	return nil
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/bot/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_FRAMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Media
		"media.temp_dir",
		"media.vector_scale",
		"media.jpeg_quality",
		"media.reply_format",
		"media.max_decoded_pixels",
		"media.ffmpeg.ffmpeg_path",
		"media.ffmpeg.ffprobe_path",
		"media.ffmpeg.input_flags",
		"media.ffmpeg.max_frames",
		// Telegram
		"telegram.token",
		"telegram.api_endpoint",
		"telegram.poll_timeout",
		// Download
		"download.max_file_size",
		"download.timeout",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.max_upload_size",
		"server.allowed_origins",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot moves to the nearest ancestor holding a config directory so
// relative env paths resolve when binaries run from a subdirectory
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
