package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the importer.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Storage  StorageConfig  `mapstructure:"storage"`
	S3       S3Config       `mapstructure:"s3"`
	GCS      GCSConfig      `mapstructure:"gcs"`
	Database DatabaseConfig `mapstructure:"database"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// SourceConfig points at the Drive folder holding one subfolder per muscle group.
type SourceConfig struct {
	FolderID        string `mapstructure:"folder_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// StorageConfig selects the object storage backend and how object URLs are built.
type StorageConfig struct {
	Backend       string        `mapstructure:"backend"`  // "s3", "minio" or "gcs"
	URLMode       string        `mapstructure:"url_mode"` // "public" or "presigned"
	PublicBaseURL string        `mapstructure:"public_base_url"`
	URLExpiry     time.Duration `mapstructure:"url_expiry"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type GCSConfig struct {
	BucketName      string `mapstructure:"bucket_name"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "mongo" or "sqlite"
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
	Table  string `mapstructure:"table"`
}

// PipelineConfig tunes the per-item processing.
type PipelineConfig struct {
	MaxDimension          int    `mapstructure:"max_dimension"`
	Quality               int    `mapstructure:"quality"`
	ReportPath            string `mapstructure:"report_path"`
	DeleteOrphanedUploads bool   `mapstructure:"delete_orphaned_uploads"`
}

const (
	BackendS3    = "s3"
	BackendMinIO = "minio"
	BackendGCS   = "gcs"

	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"

	URLModePublic    = "public"
	URLModePresigned = "presigned"

	// Used when database.uri is unset, per driver.
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultSQLitePath = "exercises.db"
)

// ErrMissingValue is returned by Validate when a required setting is empty.
var ErrMissingValue = errors.New("missing required configuration value")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// source.folder_id -> SOURCE_FOLDER_ID
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Every key gets a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("source.folder_id", "")
	v.SetDefault("source.credentials_file", "google-service-account.json")
	v.SetDefault("storage.backend", BackendS3)
	v.SetDefault("storage.url_mode", URLModePublic)
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.url_expiry", "168h")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "exercicios-padrao")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("gcs.bucket_name", "")
	v.SetDefault("gcs.credentials_file", "")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "exercise_library")
	v.SetDefault("database.table", "exercicios")
	v.SetDefault("pipeline.max_dimension", 800)
	v.SetDefault("pipeline.quality", 85)
	v.SetDefault("pipeline.report_path", "results.json")
	v.SetDefault("pipeline.delete_orphaned_uploads", false)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file: defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if config.Database.URI == "" {
		config.Database.URI = DefaultMongoURI
		if config.Database.Driver == DriverSQLite {
			config.Database.URI = DefaultSQLitePath
		}
	}

	return config, nil
}

// Validate performs presence checks on the settings the selected backends need.
func (c Config) Validate() error {
	if c.Source.FolderID == "" {
		return fmt.Errorf("%w: source.folder_id", ErrMissingValue)
	}

	switch c.Storage.Backend {
	case BackendS3, BackendMinIO:
		if c.S3.BucketName == "" {
			return fmt.Errorf("%w: s3.bucket_name", ErrMissingValue)
		}
		if c.Storage.Backend == BackendMinIO && c.S3.Endpoint == "" {
			return fmt.Errorf("%w: s3.endpoint", ErrMissingValue)
		}
	case BackendGCS:
		if c.GCS.BucketName == "" {
			return fmt.Errorf("%w: gcs.bucket_name", ErrMissingValue)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	switch c.Storage.URLMode {
	case URLModePublic, URLModePresigned:
	default:
		return fmt.Errorf("unknown storage url mode %q", c.Storage.URLMode)
	}

	switch c.Database.Driver {
	case DriverMongo, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.URI == "" {
		return fmt.Errorf("%w: database.uri", ErrMissingValue)
	}
	if c.Database.Driver == DriverSQLite && strings.HasPrefix(c.Database.URI, "mongodb") {
		return fmt.Errorf("database.uri %q is a MongoDB URI but database.driver is sqlite", c.Database.URI)
	}
	if c.Database.Table == "" {
		return fmt.Errorf("%w: database.table", ErrMissingValue)
	}

	return nil
}
