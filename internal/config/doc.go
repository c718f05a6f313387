// Package config holds the relay's configuration.
//
// Configuration is an explicit struct passed into each component at
// construction. It is assembled from three layers, later layers winning:
// built-in defaults, an optional JSON file, and environment variables
// (a local .env file is honored in development via godotenv).
package config
