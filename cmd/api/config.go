package main

import (
	"log"
	"os"

	"ihome-rentals/pkg/config"
	"ihome-rentals/pkg/logger"

	"github.com/joho/godotenv"
)

// load environment variables and configuration
func LoadConfiguration() *config.Config {
	loadEnvironment()
	cfg := loadConfigFile()
	initLogger(cfg)
	return cfg
}

// load environment variables from .env file
func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
}

// load the application configuration from a YAML file
func loadConfigFile() *config.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	return cfg
}

// route logs to stdout or to a rotating file
func initLogger(cfg *config.Config) {
	if cfg.Log.File == "" {
		logger.InitLogger(os.Stdout, cfg.Log.Level)
		return
	}
	logger.InitLogger(logger.NewFileWriter(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups), cfg.Log.Level)
}
