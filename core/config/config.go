package config

import (
	"errors"
	"reflect"
	"strings"

	"mango-sync/core/database"
	"mango-sync/core/lock"
	"mango-sync/core/logger"
	"mango-sync/core/storage"
	"mango-sync/feature/mango"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Mango holds credentials and endpoint settings for the Mango Office API.
	Mango mango.Config `mapstructure:"mango"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Lock holds configuration for the optional Redis run lock.
	Lock lock.Config `mapstructure:"lock"`
	// Storage holds configuration for the optional report archive.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MANGO_API_KEY -> mango.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings a sync run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Mango.APIKey) == "" {
		errs = append(errs, errors.New("mango.api_key is required"))
	}
	if strings.TrimSpace(c.Mango.Salt) == "" {
		errs = append(errs, errors.New("mango.salt is required"))
	}
	if !c.Database.IsValidDriver() {
		errs = append(errs, errors.New("database.driver must be one of mysql, postgres, sqlite"))
	}
	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
