// Package metrics exposes the service's prometheus counters. Every counter
// carries a single outcome label so dashboards can split success from each
// failure class without a cardinality explosion.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK              = "ok"
	OutcomeDenied          = "denied"
	OutcomeForbidden       = "forbidden"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeInvalidAction   = "invalid_action"
	OutcomeError           = "error"
)

var (
	Identifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "access_identifications_total",
		Help: "Credential identification requests by outcome.",
	}, []string{"outcome"})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "access_code_verifications_total",
		Help: "One-time code verification requests by outcome.",
	}, []string{"outcome"})

	Authorizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "access_authorizations_total",
		Help: "Per-request authorization decisions by outcome.",
	}, []string{"outcome"})
)
