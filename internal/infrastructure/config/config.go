package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/eslsoft/gearplan/internal/entity"
)

// Config holds all configuration for our application
type Config struct {
	Study    StudyConfig    `mapstructure:"study"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// StudyConfig holds the plan-run defaults.
type StudyConfig struct {
	MinutesPerDay int      `mapstructure:"minutes_per_day"`
	DaysPerWeek   int      `mapstructure:"days_per_week"`
	Weekdays      []int    `mapstructure:"weekdays"`
	ReviewOffsets []int    `mapstructure:"review_offsets"`
	ExamTypes     []string `mapstructure:"exam_types"`
}

// SheetsConfig holds the input workbook paths.
type SheetsConfig struct {
	Modules string `mapstructure:"modules"`
	Lessons string `mapstructure:"lessons"`
}

// DatabaseConfig holds the plan-history database location. An empty path
// disables history.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Study defaults
	viper.SetDefault("study.minutes_per_day", 240)
	viper.SetDefault("study.days_per_week", 5)
	viper.SetDefault("study.review_offsets", []int{1, 3, 7, 14, 30})
	viper.SetDefault("study.exam_types", []string{
		"TEA", "TSA", "ME1", "ME2", "ME3",
		"ME1 1T", "ME1 2T", "ME1 3T", "ME1 4T",
		"ME2 1T", "ME2 2T", "ME2 3T", "ME2 4T",
		"ME3 1T", "ME3 2T", "ME3 3T", "ME3 4T",
	})

	// Sheet defaults
	viper.SetDefault("sheets.modules", "lista_de_temas.xlsx")
	viper.SetDefault("sheets.lessons", "lista_de_aulas.xlsx")

	// Database defaults (empty path keeps history off)
	viper.SetDefault("database.path", "")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// Validate rejects configurations the engine must never see.
func (c *Config) Validate() error {
	if c.Study.MinutesPerDay <= 0 {
		return entity.ErrNonPositiveBudget
	}
	if c.Study.DaysPerWeek <= 0 && len(c.Study.Weekdays) == 0 {
		return entity.ErrNonPositiveDays
	}
	for _, wd := range c.Study.Weekdays {
		if wd < 0 || wd > 6 {
			return entity.ErrInvalidWeekday
		}
	}
	for _, off := range c.Study.ReviewOffsets {
		if off <= 0 {
			return entity.ErrNoReviewOffsets
		}
	}
	return nil
}
