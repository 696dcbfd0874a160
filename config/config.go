package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

const (
	StorageDriverFile   = "file"
	StorageDriverMemory = "memory"
	StorageDriverBolt   = "bolt"
	StorageDriverMongo  = "mongo"
)

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Uploads UploadsConfig `yaml:"uploads"`
	Auth    AuthConfig    `yaml:"auth"`
	Events  EventsConfig  `yaml:"events"`
	Import  ImportConfig  `yaml:"import"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// PublicDir is served as static files for every unmatched route (dashboard assets, uploads).
	PublicDir          string   `yaml:"public_dir"`
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver"`
	DataFile string `yaml:"data_file"`
	BoltPath string `yaml:"bolt_path"`
	MongoURI string `yaml:"mongo_uri"`
	MongoDB  string `yaml:"mongo_db"`
}

type UploadsConfig struct {
	Dir         string `yaml:"dir"`
	URLPrefix   string `yaml:"url_prefix"`
	MaxFileSize int64  `yaml:"max_file_size"`
	MaxGallery  int    `yaml:"max_gallery"`
}

// AuthConfig 는 관리자 API 보호 설정이다.
// JWTSecret 이 비어 있으면 관리자 API 는 인증 없이 열려 있다.
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	JWTIssuer     string `yaml:"jwt_issuer"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

// EventsConfig 는 게시글 변경 이벤트 발행 설정이다. Brokers 가 비어 있으면 발행하지 않는다.
type EventsConfig struct {
	Brokers string `yaml:"kafka_bootstrap_servers"`
	Topic   string `yaml:"topic"`
}

// ImportConfig is used by cmd/importer.
type ImportConfig struct {
	FeedURL string `yaml:"feed_url"`
	Limit   int    `yaml:"limit"`
	Author  string `yaml:"author"`
	// FetchArticles downloads each item's page when the feed carries no body or image.
	FetchArticles bool `yaml:"fetch_articles"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

// Load reads the yaml file at path, applies defaults and environment overrides.
// A missing file is not an error: defaults are used.
func Load(path string) (*AppConfig, error) {
	var c AppConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&c)
	applyDefaults(&c)
	return &c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyEnv(c *AppConfig) {
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.PublicDir, "PUBLIC_DIR")
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		c.Server.CorsAllowedOrigins = splitCSV(v)
	}
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.DataFile, "DATA_FILE")
	setString(&c.Storage.BoltPath, "BOLT_PATH")
	setString(&c.Storage.MongoURI, "MONGO_URI")
	setString(&c.Storage.MongoDB, "MONGO_DB_NAME")
	setString(&c.Uploads.Dir, "UPLOADS_DIR")
	if v := strings.TrimSpace(os.Getenv("UPLOADS_MAX_FILE_SIZE")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Uploads.MaxFileSize = n
		}
	}
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.JWTIssuer, "JWT_ISSUER")
	setString(&c.Auth.AdminUsername, "ADMIN_USERNAME")
	setString(&c.Auth.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.Events.Brokers, "KAFKA_BOOTSTRAP_SERVERS")
	setString(&c.Events.Topic, "KAFKA_POST_TOPIC")
	setString(&c.Import.FeedURL, "IMPORT_FEED_URL")
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("IMPORT_FETCH_ARTICLES"))); err == nil {
		c.Import.FetchArticles = v
	}
}

func applyDefaults(c *AppConfig) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if len(c.Server.CorsAllowedOrigins) == 0 {
		c.Server.CorsAllowedOrigins = []string{"*"}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverFile
	}
	if c.Storage.DataFile == "" {
		c.Storage.DataFile = filepath.Join("data", "data.json")
	}
	if c.Storage.BoltPath == "" {
		c.Storage.BoltPath = filepath.Join("data", "posts.db")
	}
	if c.Storage.MongoDB == "" {
		c.Storage.MongoDB = "blogcms"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = filepath.Join("public", "uploads")
	}
	if c.Uploads.URLPrefix == "" {
		c.Uploads.URLPrefix = "/uploads"
	}
	if c.Uploads.MaxFileSize <= 0 {
		c.Uploads.MaxFileSize = 5 * 1024 * 1024
	}
	if c.Uploads.MaxGallery <= 0 {
		c.Uploads.MaxGallery = 10
	}
	if c.Auth.JWTIssuer == "" {
		c.Auth.JWTIssuer = "blog-cms"
	}
	if c.Auth.AdminUsername == "" {
		c.Auth.AdminUsername = "admin"
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "blog-cms.post.events"
	}
	if c.Import.Limit <= 0 {
		c.Import.Limit = 10
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
