package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-access-server/auth"
	"github.com/jrsteele09/go-access-server/internal/config"
	"github.com/jrsteele09/go-access-server/users"
)

// Server wires the HTTP surface over the security core. Every protected
// route declares its (resource, action) pair statically at registration and
// the authorization strategy gates it before the handler body runs.
type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	security *auth.SecurityService
	strategy *auth.Strategy
	userRepo users.Repo
}

func New(config config.Config, security *auth.SecurityService, strategy *auth.Strategy, userRepo users.Repo) (*Server, error) {
	if security == nil {
		return nil, fmt.Errorf("[Server New] security service is required")
	}
	if strategy == nil {
		return nil, fmt.Errorf("[Server New] authorization strategy is required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("[Server New] user repo is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		security: security,
		strategy: strategy,
		userRepo: userRepo,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + resetColor
	} else {
		displayMethod = gray + paddedMethod + resetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
