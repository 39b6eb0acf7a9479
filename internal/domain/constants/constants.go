// Package constants holds shared domain constants.
package constants

// Runtime environment names.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Crowd density tiers shown on venue cards.
const (
	CrowdLow    = "low"
	CrowdMedium = "medium"
	CrowdHigh   = "high"
)
