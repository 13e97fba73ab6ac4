package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Source identifies where a request came from.
type Source string

const (
	SourceTelegram Source = "telegram"
	SourceEmail    Source = "email"
	SourceHTTP     Source = "http"
	SourceCLI      Source = "cli"
)

// DefaultTaskListID is the backend's alias for the user's default task list.
const DefaultTaskListID = "@default"
