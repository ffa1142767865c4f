package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Profile holds the runtime configuration of an analysis run. Every field
// has a working default; a profile file only overrides what it names.
type Profile struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`

	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" validate:"gte=1"`
	BulkTimeoutSeconds  int `mapstructure:"bulk_timeout_seconds" validate:"gte=1"`

	YearStart int `mapstructure:"year_start" validate:"gte=2000,lte=2030"`
	YearEnd   int `mapstructure:"year_end" validate:"gte=2000,lte=2030,gtefield=YearStart"`

	FetchLimit     int `mapstructure:"fetch_limit" validate:"gt=0"`
	BulkFetchLimit int `mapstructure:"bulk_fetch_limit" validate:"gt=0"`

	SchoolThreshold float64 `mapstructure:"school_threshold" validate:"gte=0"`
	SKUThreshold    float64 `mapstructure:"sku_threshold" validate:"gte=0"`
}

func Default() Profile {
	return Profile{
		Endpoint:            "https://opendata.usac.org/resource/hbj5-2bpj.json",
		QueryTimeoutSeconds: 60,
		BulkTimeoutSeconds:  300,
		YearStart:           2016,
		YearEnd:             2025,
		FetchLimit:          10000,
		BulkFetchLimit:      50000,
		SchoolThreshold:     250000,
		SKUThreshold:        100000,
	}
}

// Load reads a profile file and validates the result. An empty path yields
// the defaults.
func Load(path string) (Profile, error) {
	profile := Default()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Profile{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.Unmarshal(&profile); err != nil {
			return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
		}
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (p Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

// Years lists the funding years of the configured range, oldest first.
func (p Profile) Years() []string {
	years := make([]string, 0, p.YearEnd-p.YearStart+1)
	for y := p.YearStart; y <= p.YearEnd; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return years
}

func (p Profile) QueryTimeout() time.Duration {
	return time.Duration(p.QueryTimeoutSeconds) * time.Second
}

func (p Profile) BulkTimeout() time.Duration {
	return time.Duration(p.BulkTimeoutSeconds) * time.Second
}
