// Package metrics defines all custom Prometheus metrics for the identity API.
// It is the single source of truth for metric names, labels, and help strings.
// Metrics self-register with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ImportBatchesTotal counts bulk import calls.
// Label:
//   - result: "committed" (staged subset persisted) or "failed" (commit-pass failure)
var ImportBatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_batches_total",
		Help:      "Total number of bulk import batches, labelled by outcome.",
	},
	[]string{"result"},
)

// ImportRecordsTotal counts per-record import outcomes.
// Label:
//   - result: "imported" or "rejected"
var ImportRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_records_total",
		Help:      "Total number of individual import records, labelled by outcome.",
	},
	[]string{"result"},
)

// GeneratedUsersTotal counts identities produced by the generator endpoint.
var GeneratedUsersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generated_users_total",
		Help:      "Total number of random identities generated.",
	},
)
