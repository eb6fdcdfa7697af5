package config

import (
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Logger   LoggerConfig   `yaml:"logger"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	DBName       string `yaml:"dbname"`
	SSLMode      string `yaml:"sslmode"`
	MaxIdleConns int    `yaml:"maxIdleConns"`
	MaxOpenConns int    `yaml:"maxOpenConns"`
	MaxLifetime  int    `yaml:"maxLifetime"` // in minutes
}

type AuthConfig struct {
	AccessSecret    string `yaml:"accessSecret"`
	RefreshSecret   string `yaml:"refreshSecret"`
	AccessTokenTTL  int    `yaml:"accessTokenTTL"`  // in minutes
	RefreshTokenTTL int    `yaml:"refreshTokenTTL"` // in hours
}

type StorageConfig struct {
	UploadDir     string `yaml:"uploadDir"`
	MaxUploadSize int64  `yaml:"maxUploadSize"` // in bytes
}

type LoggerConfig struct {
	Level      string `yaml:"level"`
	OutputPath string `yaml:"outputPath"`
}

var (
	config *Config
	once   sync.Once
)

// Load reads the configuration file and returns a Config struct
func Load(configPath string) (*Config, error) {
	once.Do(func() {
		config = &Config{}

		data, err := os.ReadFile(configPath)
		if err != nil {
			panic(err)
		}

		err = yaml.Unmarshal(data, config)
		if err != nil {
			panic(err)
		}

		applyDefaults(config)

		// Override with environment variables if they exist
		if envPort := os.Getenv("SERVER_PORT"); envPort != "" {
			config.Server.Port = envPort
		}
		if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
			config.Database.Host = dbHost
		}
		if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
			config.Database.Port = dbPort
		}
		if dbUser := os.Getenv("DB_USER"); dbUser != "" {
			config.Database.User = dbUser
		}
		if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
			config.Database.Password = dbPass
		}
		if dbName := os.Getenv("DB_NAME"); dbName != "" {
			config.Database.DBName = dbName
		}
		if accessSecret := os.Getenv("JWT_ACCESS_SECRET"); accessSecret != "" {
			config.Auth.AccessSecret = accessSecret
		}
		if refreshSecret := os.Getenv("JWT_REFRESH_SECRET"); refreshSecret != "" {
			config.Auth.RefreshSecret = refreshSecret
		}
		if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
			config.Storage.UploadDir = uploadDir
		}
		if maxUpload := os.Getenv("MAX_UPLOAD_SIZE"); maxUpload != "" {
			if v, err := strconv.ParseInt(maxUpload, 10, 64); err == nil {
				config.Storage.MaxUploadSize = v
			}
		}
	})

	return config, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3000"
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = 10
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = 24
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "public/uploads"
	}
	if cfg.Storage.MaxUploadSize == 0 {
		cfg.Storage.MaxUploadSize = 1 << 20
	}
}

// Get returns the loaded configuration
func Get() *Config {
	if config == nil {
		panic("Config not loaded")
	}
	return config
}

// Set replaces the loaded configuration. Intended for tests.
func Set(cfg *Config) {
	applyDefaults(cfg)
	config = cfg
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return "postgresql://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}
