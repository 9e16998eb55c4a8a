package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dermalyze/ratioplot/internal/histogram"
	"github.com/dermalyze/ratioplot/internal/render"
)

// Config holds all configuration for the pipeline. Every knob defaults to
// the values the plot was originally produced with, so running the binary
// with no environment set reproduces the canonical figure.
type Config struct {
	Inputs    InputsConfig
	Histogram histogram.Spec
	Plot      PlotConfig
	Output    OutputConfig
	Database  DatabaseConfig
	S3        S3Config
	Env       string
}

// InputsConfig holds the two ratio file paths.
type InputsConfig struct {
	MelanomaPath string
	NormalPath   string
}

// PlotConfig holds the fixed visual parameters of the figure.
type PlotConfig struct {
	Title         string
	XLabel        string
	YLabel        string
	MelanomaLabel string
	NormalLabel   string
	MelanomaColor string
	NormalColor   string
	WidthInches   float64
	HeightInches  float64
}

// OutputConfig holds the output image destination.
type OutputConfig struct {
	Path string
}

// DatabaseConfig holds the optional run-history database. An empty URL
// disables run recording.
type DatabaseConfig struct {
	URL string
}

// S3Config holds the optional plot publishing target. An empty bucket
// disables publishing.
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Load loads configuration from environment variables and .env files.
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("MEL_RATIOS_PATH", "mel_ratios.txt")
	viper.SetDefault("NV_RATIOS_PATH", "nv_ratios.txt")
	viper.SetDefault("OUTPUT_PATH", "ratio_distribution.png")
	viper.SetDefault("HIST_BINS", 50)
	viper.SetDefault("HIST_RANGE_MIN", 0.0)
	viper.SetDefault("HIST_RANGE_MAX", 0.05)
	viper.SetDefault("MEL_COLOR", "red")
	viper.SetDefault("NV_COLOR", "blue")
	viper.SetDefault("MEL_LABEL", "Melanoma")
	viper.SetDefault("NV_LABEL", "Normal")
	viper.SetDefault("PLOT_TITLE", "Distribution of Ratios: Melanoma vs Normal")
	viper.SetDefault("PLOT_XLABEL", "Ratio")
	viper.SetDefault("PLOT_YLABEL", "Frequency")
	viper.SetDefault("FIG_WIDTH", 10.0)
	viper.SetDefault("FIG_HEIGHT", 6.0)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("ENVIRONMENT", "dev")

	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Try to read .env file for the current environment
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error - file may not exist

	// Environment variables override .env file values
	viper.AutomaticEnv()

	viper.BindEnv("MEL_RATIOS_PATH")
	viper.BindEnv("NV_RATIOS_PATH")
	viper.BindEnv("OUTPUT_PATH")
	viper.BindEnv("HIST_BINS")
	viper.BindEnv("HIST_RANGE_MIN")
	viper.BindEnv("HIST_RANGE_MAX")
	viper.BindEnv("MEL_COLOR")
	viper.BindEnv("NV_COLOR")
	viper.BindEnv("MEL_LABEL")
	viper.BindEnv("NV_LABEL")
	viper.BindEnv("PLOT_TITLE")
	viper.BindEnv("PLOT_XLABEL")
	viper.BindEnv("PLOT_YLABEL")
	viper.BindEnv("FIG_WIDTH")
	viper.BindEnv("FIG_HEIGHT")
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("S3_BUCKET")
	viper.BindEnv("S3_ENDPOINT")
	viper.BindEnv("AWS_REGION")
	viper.BindEnv("AWS_ACCESS_KEY_ID")
	viper.BindEnv("AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("ENVIRONMENT")

	var config Config
	config.Inputs.MelanomaPath = viper.GetString("MEL_RATIOS_PATH")
	config.Inputs.NormalPath = viper.GetString("NV_RATIOS_PATH")
	config.Output.Path = viper.GetString("OUTPUT_PATH")
	config.Histogram.Bins = viper.GetInt("HIST_BINS")
	config.Histogram.Min = viper.GetFloat64("HIST_RANGE_MIN")
	config.Histogram.Max = viper.GetFloat64("HIST_RANGE_MAX")
	config.Plot.MelanomaColor = viper.GetString("MEL_COLOR")
	config.Plot.NormalColor = viper.GetString("NV_COLOR")
	config.Plot.MelanomaLabel = viper.GetString("MEL_LABEL")
	config.Plot.NormalLabel = viper.GetString("NV_LABEL")
	config.Plot.Title = viper.GetString("PLOT_TITLE")
	config.Plot.XLabel = viper.GetString("PLOT_XLABEL")
	config.Plot.YLabel = viper.GetString("PLOT_YLABEL")
	config.Plot.WidthInches = viper.GetFloat64("FIG_WIDTH")
	config.Plot.HeightInches = viper.GetFloat64("FIG_HEIGHT")
	config.Database.URL = viper.GetString("DATABASE_URL")
	config.S3.Bucket = viper.GetString("S3_BUCKET")
	config.S3.Endpoint = viper.GetString("S3_ENDPOINT")
	config.S3.Region = viper.GetString("AWS_REGION")
	config.S3.AccessKey = viper.GetString("AWS_ACCESS_KEY_ID")
	config.S3.SecretKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.Env = env

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the configured values describe a renderable plot.
func (c *Config) Validate() error {
	if c.Inputs.MelanomaPath == "" {
		return fmt.Errorf("MEL_RATIOS_PATH is required")
	}
	if c.Inputs.NormalPath == "" {
		return fmt.Errorf("NV_RATIOS_PATH is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("OUTPUT_PATH is required")
	}
	if err := c.Histogram.Validate(); err != nil {
		return err
	}
	if c.Plot.WidthInches <= 0 || c.Plot.HeightInches <= 0 {
		return fmt.Errorf("figure dimensions must be positive, got %gx%g", c.Plot.WidthInches, c.Plot.HeightInches)
	}
	if _, err := render.ParseColor(c.Plot.MelanomaColor); err != nil {
		return fmt.Errorf("MEL_COLOR: %w", err)
	}
	if _, err := render.ParseColor(c.Plot.NormalColor); err != nil {
		return fmt.Errorf("NV_COLOR: %w", err)
	}
	return nil
}
