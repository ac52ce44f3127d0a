// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub providers accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// DefaultOrderPlacedTopic is used when the google provider has no topicId.
const DefaultOrderPlacedTopic = "tastebud-order-placed"

// Order sources carried on order-placed events.
const (
	OrderSourceManual = "manual"
	OrderSourceAuto   = "auto"
)
