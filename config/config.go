// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.cors", "host_cors")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")
	v.BindEnv("host.ssl.certificate_path", "host_ssl_certificate_path")
	v.BindEnv("host.ssl.certificate_key_path", "host_ssl_certificate_key_path")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.access_ttl", "jwt_access_ttl")
	v.BindEnv("jwt.refresh_ttl", "jwt_refresh_ttl")
	v.BindEnv("jwt.email_ttl", "jwt_email_ttl")

	v.BindEnv("redis.addr", "redis_addr")
	v.BindEnv("redis.db", "redis_db")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.access_key", "aws_access_key")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")

	v.BindEnv("avatar.fetch_url", "avatar_fetch_url")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.cors", []string{"http://localhost:3000", "http://localhost:5000"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "contacts.db")

	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("jwt.email_ttl", "168h")

	v.SetDefault("redis.db", 0)

	v.SetDefault("avatar.fetch_url", "https://www.gravatar.com/avatar")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetDuration("jwt.access_ttl") <= 0 {
		return errors.New("jwt.access_ttl must be bigger than 0")
	}

	if v.GetDuration("jwt.refresh_ttl") <= v.GetDuration("jwt.access_ttl") {
		return errors.New("jwt.refresh_ttl must be bigger than jwt.access_ttl")
	}

	if v.GetDuration("jwt.email_ttl") <= 0 {
		return errors.New("jwt.email_ttl must be bigger than 0")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if v.GetString("mail.host") == "" || v.GetString("mail.sender") == "" {
		zap.L().Warn("Mail settings are incomplete, confirmation mails will fail to send")
	}

	if v.GetString("aws.bucket") != "" {
		if v.GetString("aws.access_key") == "" {
			return errors.New("aws access key can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("aws secret access key can't be empty")
		}
		if v.GetString("aws.region") == "" {
			return errors.New("aws region can't be empty")
		}
	}

	if v.GetString("redis.addr") == "" {
		fmt.Println("[WARNING]: No redis address configured. Per-route rate limits won't be enforced")
	}

	return nil
}
