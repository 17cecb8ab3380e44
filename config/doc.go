// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("todoapi", &cfg, config.WithConfigFile("config.yml"))
//
// Environment variables override file values. AUTH_TOKEN_SECRET binds to
// auth.token.secret, DATABASE_DSN to database.dsn and so on.
package config
