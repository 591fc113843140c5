package server

import (
	"net/http"

	"github.com/jrsteele09/go-access-server/permissions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// LOGIN FLOW
	s.RegisterRouteFunc("POST "+RouteIdentify, ChainMiddleware(s.IdentifyHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteVerify2FA, ChainMiddleware(s.VerifyCodeHandler(), s.APIMiddleware()...))

	// USER ADMINISTRATION
	// Each route carries its (resource, action) metadata; account creation is
	// open so new deployments can seed their first users.
	s.RegisterRouteFunc("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteUsers,
		ChainMiddleware(s.ListUsersHandler(), s.protectedAPI(ResourceUsers, permissions.ActionList)...))
	s.RegisterRouteFunc("GET "+RouteUsersExport,
		ChainMiddleware(s.ExportUsersHandler(), s.protectedAPI(ResourceUsers, permissions.ActionExport)...))
	s.RegisterRouteFunc("GET "+RouteUserByID,
		ChainMiddleware(s.GetUserHandler(), s.protectedAPI(ResourceUsers, permissions.ActionList)...))
	s.RegisterRouteFunc("PUT "+RouteUserByID,
		ChainMiddleware(s.UpdateUserHandler(), s.protectedAPI(ResourceUsers, permissions.ActionUpdate)...))
	s.RegisterRouteFunc("DELETE "+RouteUserByID,
		ChainMiddleware(s.DeleteUserHandler(), s.protectedAPI(ResourceUsers, permissions.ActionDelete)...))

	// OPERATIONAL
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}

func (s *Server) protectedAPI(resourceID string, action permissions.Action) []func(http.HandlerFunc) http.HandlerFunc {
	middleware := s.APIMiddleware()
	middleware = append(middleware, s.Protected(resourceID, action))
	return middleware
}
