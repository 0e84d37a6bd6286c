package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the playground daemon and CLI.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr         string `json:"addr" yaml:"addr" toml:"addr" env:"PLAYD_ADDR"`
	RuntimeURL   string `json:"runtime_url" yaml:"runtime_url" toml:"runtime_url" env:"PLAYD_RUNTIME_URL"`
	DataDir      string `json:"data_dir" yaml:"data_dir" toml:"data_dir" env:"PLAYD_DATA_DIR"`
	IndexPath    string `json:"index_path" yaml:"index_path" toml:"index_path" env:"PLAYD_INDEX_PATH"`
	ChatModel    string `json:"chat_model" yaml:"chat_model" toml:"chat_model" env:"PLAYD_CHAT_MODEL"`
	EmbedModel   string `json:"embed_model" yaml:"embed_model" toml:"embed_model" env:"PLAYD_EMBED_MODEL"`
	ChunkSize    int    `json:"chunk_size" yaml:"chunk_size" toml:"chunk_size" env:"PLAYD_CHUNK_SIZE"`
	ChunkOverlap int    `json:"chunk_overlap" yaml:"chunk_overlap" toml:"chunk_overlap" env:"PLAYD_CHUNK_OVERLAP"`
	RetrieveTopK int    `json:"retrieve_top_k" yaml:"retrieve_top_k" toml:"retrieve_top_k" env:"PLAYD_RETRIEVE_TOP_K"`

	MaxQueueDepth  int   `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth" env:"PLAYD_MAX_QUEUE_DEPTH"`
	MaxWaitSeconds int   `json:"max_wait_seconds" yaml:"max_wait_seconds" toml:"max_wait_seconds" env:"PLAYD_MAX_WAIT_SECONDS"`
	MaxBodyBytes   int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"PLAYD_MAX_BODY_BYTES"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"PLAYD_CORS_ENABLED"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" env:"PLAYD_CORS_ALLOWED_ORIGINS" envSeparator:","`

	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level" env:"PLAYD_LOG_LEVEL"`
}

// Defaults applied by ApplyDefaults when fields are unset.
const (
	DefaultAddr         = ":8080"
	DefaultRuntimeURL   = "http://127.0.0.1:11434"
	DefaultDataDir      = "~/playground/data"
	DefaultChatModel    = "qwen2.5:3b"
	DefaultEmbedModel   = "nomic-embed-text"
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultRetrieveTopK = 4
	DefaultQueueDepth   = 32
	DefaultWaitSeconds  = 30
	DefaultBodyBytes    = 1 << 20
)

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RuntimeURL == "" {
		cfg.RuntimeURL = DefaultRuntimeURL
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = filepath.Join(cfg.DataDir, "index.db")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = DefaultEmbedModel
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = DefaultChunkOverlap
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}
	if cfg.RetrieveTopK <= 0 {
		cfg.RetrieveTopK = DefaultRetrieveTopK
	}
	if cfg.MaxQueueDepth <= 0 {
		cfg.MaxQueueDepth = DefaultQueueDepth
	}
	if cfg.MaxWaitSeconds <= 0 {
		cfg.MaxWaitSeconds = DefaultWaitSeconds
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultBodyBytes
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
