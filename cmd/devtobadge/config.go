package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	devtobadge "github.com/azis14/devto-badge"
	"github.com/azis14/devto-badge/article"
	"github.com/azis14/devto-badge/badge"
)

const envPrefix = "DEVTOBADGE"

// loadConfig reads an optional .env file, then the config file and
// DEVTOBADGE_* environment variables. Environment wins over the file.
func loadConfig(v *viper.Viper, cfgFile string) (devtobadge.Config, error) {
	var cfg devtobadge.Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	v.SetDefault("addr", ":3000")
	v.SetDefault("api_base_url", article.DefaultBaseURL)
	v.SetDefault("article_host", badge.DefaultArticleHost)
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("max_image_bytes", 5<<20)
	v.SetDefault("user_agent", "")
	v.SetDefault("service_name", "devto-badge")
	v.SetDefault("metrics_enabled", true)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".devtobadge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
