package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
	Prefix     string `mapstructure:"prefix"`
}

type Config struct {
	Seed                int     `mapstructure:"seed"`
	CatalogSource       string  `mapstructure:"catalog_source"` // "generated", "sample", "file" or "postgres"
	CatalogFile         string  `mapstructure:"catalog_file"`
	InitialRestaurants  int     `mapstructure:"initial_restaurants"`
	DishesPerRestaurant int     `mapstructure:"dishes_per_restaurant"`
	VideoRatio          float64 `mapstructure:"video_ratio"`

	// playback and interaction
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	ToastDuration  time.Duration `mapstructure:"toast_duration"`
	ViewportWidth  float64       `mapstructure:"viewport_width"`
	ViewportHeight float64       `mapstructure:"viewport_height"`
	HotspotRadius  float64       `mapstructure:"hotspot_radius"`

	// simulation
	SimulationDuration time.Duration `mapstructure:"simulation_duration"`
	Realtime           bool          `mapstructure:"realtime"`
	ActionInterval     time.Duration `mapstructure:"action_interval"` // mean time between simulated user actions
	OfflineProbability float64       `mapstructure:"offline_probability"`
	ShowProgress       bool          `mapstructure:"show_progress"`

	// persistence
	StorageBackend string             `mapstructure:"storage_backend"`
	StoragePath    string             `mapstructure:"storage_path"`
	StorageTimeout time.Duration      `mapstructure:"storage_timeout"`
	Database       DatabaseConfig     `mapstructure:"database"`
	CloudStorage   CloudStorageConfig `mapstructure:"cloud_storage"`

	// activity output
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	OutputPath      string `mapstructure:"output_path"`
	OutputFolder    string `mapstructure:"output_folder"`
	OutputFormat    string `mapstructure:"output_format"` // "json", "csv", "parquet" or "postgres"
}

func setDefaults() {
	viper.SetDefault("seed", 42)
	viper.SetDefault("catalog_source", "generated")
	viper.SetDefault("initial_restaurants", 5)
	viper.SetDefault("dishes_per_restaurant", 4)
	viper.SetDefault("video_ratio", 0.25)
	viper.SetDefault("tick_interval", "50ms")
	viper.SetDefault("toast_duration", "3s")
	viper.SetDefault("viewport_width", 390)
	viper.SetDefault("viewport_height", 844)
	viper.SetDefault("hotspot_radius", 24)
	viper.SetDefault("simulation_duration", "2m")
	viper.SetDefault("action_interval", "2s")
	viper.SetDefault("storage_backend", StorageBackendMemory)
	viper.SetDefault("storage_timeout", "5s")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("output_folder", "activity")
	viper.SetDefault("output_format", "json")
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (cfg *Config) Validate() error {
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", cfg.TickInterval)
	}
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %.0fx%.0f", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	switch cfg.StorageBackend {
	case StorageBackendMemory, StorageBackendFile, StorageBackendPostgres, StorageBackendS3:
	default:
		return fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
	if cfg.StorageBackend == StorageBackendFile && cfg.StoragePath == "" {
		return fmt.Errorf("storage_path is required for the file storage backend")
	}
	switch cfg.OutputFormat {
	case "json", "csv", "parquet", "postgres":
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
	if cfg.OfflineProbability < 0 || cfg.OfflineProbability > 1 {
		return fmt.Errorf("offline_probability must be within 0..1, got %g", cfg.OfflineProbability)
	}
	switch cfg.CatalogSource {
	case "generated", "sample", "postgres":
	case "file":
		if cfg.CatalogFile == "" {
			return fmt.Errorf("catalog_file is required when catalog_source is file")
		}
	default:
		return fmt.Errorf("unsupported catalog source: %s", cfg.CatalogSource)
	}
	return nil
}

// ConnString renders the database settings in libpq key/value form.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
