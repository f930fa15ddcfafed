package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int    `yaml:"port" validate:"gt=0,lte=65535"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Database struct {
		Host         string `yaml:"host" validate:"required"`
		Port         int    `yaml:"port" validate:"gt=0,lte=65535"`
		User         string `yaml:"user" validate:"required"`
		Password     string `yaml:"password"`
		DBName       string `yaml:"dbname" validate:"required"`
		MaxOpenConns int    `yaml:"max_open_conns" validate:"gte=0"`
		MaxIdleConns int    `yaml:"max_idle_conns" validate:"gte=0"`
		AutoMigrate  bool   `yaml:"auto_migrate"`
	} `yaml:"database"`
	Redis struct {
		Host        string `yaml:"host" validate:"required,hostname|ip"`
		Port        int    `yaml:"port" validate:"required,gt=0,lte=65535"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db" validate:"gte=0"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Log struct {
		Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
		MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	} `yaml:"log"`
	Cache struct {
		AreaInfoTTLSeconds    int `yaml:"area_info_ttl_seconds" validate:"gt=0"`
		HouseDetailTTLSeconds int `yaml:"house_detail_ttl_seconds" validate:"gt=0"`
		HouseListTTLSeconds   int `yaml:"house_list_ttl_seconds" validate:"gt=0"`
		HomePageTTLSeconds    int `yaml:"home_page_ttl_seconds" validate:"gt=0"`
	} `yaml:"cache"`
	Listing struct {
		PageSize             int `yaml:"page_size" validate:"gt=0"`
		HomePageMaxHouses    int `yaml:"home_page_max_houses" validate:"gt=0"`
		DetailCommentDisplay int `yaml:"detail_comment_display" validate:"gte=0"`
	} `yaml:"listing"`
	Booking struct {
		LockHouseRow          bool `yaml:"lock_house_row"`
		RejectedFreesCalendar bool `yaml:"rejected_frees_calendar"`
	} `yaml:"booking"`
	Images struct {
		URLPrefix string `yaml:"url_prefix"`
	} `yaml:"images"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute" validate:"gt=0"`
		Burst             int `yaml:"burst" validate:"gt=0"`
	} `yaml:"rate_limit"`
	Scheduler struct {
		AreaWarmup     string `yaml:"area_warmup"`
		LimiterCleanup string `yaml:"limiter_cleanup"`
	} `yaml:"scheduler"`
}

// Default returns a Config carrying the defaults every loaded file starts from.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "root"
	cfg.Database.DBName = "ihome"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Redis.Host = "localhost"
	cfg.Redis.Port = 6379
	cfg.Log.Level = "info"
	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 3
	cfg.Cache.AreaInfoTTLSeconds = 7200
	cfg.Cache.HouseDetailTTLSeconds = 7200
	cfg.Cache.HouseListTTLSeconds = 7200
	cfg.Cache.HomePageTTLSeconds = 7200
	cfg.Listing.PageSize = 2
	cfg.Listing.HomePageMaxHouses = 5
	cfg.Listing.DetailCommentDisplay = 30
	cfg.RateLimit.RequestsPerMinute = 100
	cfg.RateLimit.Burst = 10
	cfg.Scheduler.AreaWarmup = "0 */30 * * * *"
	cfg.Scheduler.LimiterCleanup = "0 0 * * * *"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, applies environment overrides and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}

	return cfg, nil
}

// Override with environment variables if set
func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.Server.Port = n
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if host := os.Getenv("MYSQL_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("MYSQL_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid MYSQL_PORT value: %w", err)
		}
		cfg.Database.Port = n
	}
	if user := os.Getenv("MYSQL_USER"); user != "" {
		cfg.Database.User = user
	}
	if password := os.Getenv("MYSQL_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %w", err)
		}
		cfg.Redis.Port = n
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = n
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	return nil
}

func (c *Config) AreaInfoTTL() time.Duration {
	return time.Duration(c.Cache.AreaInfoTTLSeconds) * time.Second
}

func (c *Config) HouseDetailTTL() time.Duration {
	return time.Duration(c.Cache.HouseDetailTTLSeconds) * time.Second
}

func (c *Config) HouseListTTL() time.Duration {
	return time.Duration(c.Cache.HouseListTTLSeconds) * time.Second
}

func (c *Config) HomePageTTL() time.Duration {
	return time.Duration(c.Cache.HomePageTTLSeconds) * time.Second
}
