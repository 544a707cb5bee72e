// Package common contains constants and sentinel errors shared by the
// job portal server layers.
package common

// AccessTokenHeaderName is the gRPC metadata key that carries the access
// token on inbound requests.
const AccessTokenHeaderName = "access_token"

// Defaults applied by the service layer when a caller leaves the value empty.
const (
	DefaultOpenings        = 1
	DefaultRecommendLimit  = 5
	DefaultDashboardRecent = 5
	DefaultListLimit       = 20
	MaxListLimit           = 100
)
