// Package metrics defines and registers the custom Prometheus metrics of the
// expense API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry when the
// package is loaded; HTTP request metrics are added by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expenses"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful registrations.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users registered.",
	},
)

// ── Expense metrics ───────────────────────────────────────────────────────────

// ExpensesCreatedTotal counts newly stored expenses.
var ExpensesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_created_total",
		Help:      "Total number of expenses created.",
	},
)

// ExpensesDeletedTotal counts explicit expense deletions. Cascaded deletes
// caused by removing a user are not included.
var ExpensesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expenses_deleted_total",
		Help:      "Total number of expenses deleted explicitly.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensRevokedTotal counts tokens revoked through logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of bearer tokens revoked by logout.",
	},
)
