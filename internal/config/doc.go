// Package config loads proteus configuration from the environment.
//
// Values come from environment variables, optionally seeded from .env files
// with github.com/joho/godotenv, and are decoded into structs tagged for
// github.com/caarlos0/env/v11. Nested structs such as mockstore.Config or
// remote.FirebaseConfig are parsed along with their parent.
package config
