// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Rejections counts writes refused by an integrity check, by error kind.
	Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvestdesk_integrity_rejections_total",
		Help: "Writes rejected by uniqueness, reference, transition or validation checks",
	}, []string{"entity", "kind"})

	// CascadeSteps counts completed steps of multi-path mutations.
	CascadeSteps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvestdesk_cascade_steps_total",
		Help: "Completed steps of multi-path deletes",
	}, []string{"op", "step"})

	// Unresolved counts references that degraded to a placeholder in a view.
	Unresolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harvestdesk_unresolved_refs_total",
		Help: "References that did not resolve while building read views",
	}, []string{"view"})
)
