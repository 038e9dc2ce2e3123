// Package config loads the application configuration.
//
// Configuration is environment-first: defaults come from struct tags, a
// local .env file may override them, and real environment variables win.
// Each section struct lives next to the code it configures (server,
// storage, logger, database, sources) and is aggregated here.
package config
