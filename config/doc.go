// Package config loads configuration structs from environment variables
// via github.com/caarlos0/env field tags, bootstrapping an optional .env
// file with github.com/joho/godotenv. The store subpackages use it for
// their NewFromEnv constructors.
package config
