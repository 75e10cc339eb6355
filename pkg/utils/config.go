package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Event    EventConfig
	Backup   BackupConfig
	Artifact ArtifactConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type EventConfig struct {
	Name            string
	PoolSize        int
	DefaultCategory string
	DefaultSeat     string
}

type BackupConfig struct {
	Enabled       bool
	Dir           string
	IntervalHours int
	Keep          int
}

type ArtifactConfig struct {
	Dir string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("EVENT_NAME", "Main Event")
	viper.SetDefault("POOL_SIZE", 200)
	viper.SetDefault("DEFAULT_CATEGORY", "Standard")
	viper.SetDefault("DEFAULT_SEAT", "Free seating")
	viper.SetDefault("BACKUP_ENABLED", true)
	viper.SetDefault("BACKUP_DIR", "backups/")
	viper.SetDefault("BACKUP_INTERVAL_HOURS", 24)
	viper.SetDefault("BACKUP_KEEP", 14)
	viper.SetDefault("ARTIFACT_DIR", "generated/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Event: EventConfig{
			Name:            viper.GetString("EVENT_NAME"),
			PoolSize:        viper.GetInt("POOL_SIZE"),
			DefaultCategory: viper.GetString("DEFAULT_CATEGORY"),
			DefaultSeat:     viper.GetString("DEFAULT_SEAT"),
		},
		Backup: BackupConfig{
			Enabled:       viper.GetBool("BACKUP_ENABLED"),
			Dir:           viper.GetString("BACKUP_DIR"),
			IntervalHours: viper.GetInt("BACKUP_INTERVAL_HOURS"),
			Keep:          viper.GetInt("BACKUP_KEEP"),
		},
		Artifact: ArtifactConfig{
			Dir: viper.GetString("ARTIFACT_DIR"),
		},
	}

	return config, nil
}
