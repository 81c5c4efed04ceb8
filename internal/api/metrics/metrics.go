// Package metrics defines the custom Prometheus metrics for the TrainHub
// session gateway. It is the single source of truth for metric names,
// labels, and help strings; everything registers against the default
// registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trainhub"

// SessionOperationsTotal counts session mutations by operation and outcome.
// Labels:
//   - operation: "login", "signup", "verify", "resend", "logout"
//   - outcome: "success", "error", or "pending" (verify responses that did
//     not establish a session)
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GuardDecisionsTotal counts route-guard outcomes.
// Label:
//   - decision: "allow", "pending", "login_redirect", "home_redirect"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)
