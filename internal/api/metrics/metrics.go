// Package metrics declares the API's own Prometheus collectors. Request
// counts and latencies come from echoprometheus; these cover what the
// middleware cannot see.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts successful registrations by role.
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// TokenRejectionsTotal counts requests the access guard turned away.
// Label:
//   - reason: "missing", "invalid" or "forbidden"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// RecordWritesTotal counts successful store writes.
// Labels:
//   - entity: "user", "project", "task" or "team"
//   - op: "create", "update", "delete", "add_member" or "remove_member"
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of successful writes, by entity and operation.",
	},
	[]string{"entity", "op"},
)
