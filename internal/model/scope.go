package model

// Scope carries the acting user's identity for a single request.
type Scope struct {
	UserID    string
	Username  string
	AuthToken string // bearer credential forwarded from the caller, may be empty
}

// Environment represents the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)
