package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - identification and second factor
	RouteIdentify  = "/identify"
	RouteVerify2FA = "/verify-2fa"

	// User administration
	RouteUsers       = "/users"
	RouteUserByID    = "/users/{id}"
	RouteUsersExport = "/users/export"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)

// Resource identifiers protected routes declare. These are the resource half
// of the (resource, action) metadata checked by the authorization strategy.
const (
	ResourceUsers = "users"
)
