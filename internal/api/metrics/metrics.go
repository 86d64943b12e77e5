// Package metrics defines the custom Prometheus metrics of the content API.
// HTTP request metrics come from echoprometheus; this package only covers
// domain events. All vectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cms"

// ── Article metrics ───────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts newly created articles.
// Label:
//   - role: role of the author at creation time
var ArticlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created, by author role.",
	},
	[]string{"role"},
)

// ArticleStatusChangesTotal counts moderation toggles.
// Label:
//   - status: the state after the toggle ("published" or "draft")
var ArticleStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_status_changes_total",
		Help:      "Total number of article publication toggles, by resulting status.",
	},
	[]string{"status"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts self-service registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of self-service registrations.",
	},
)

// UsersDeletedTotal counts accounts removed by admins. Ignored self deletes
// are not counted.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthorizationFailuresTotal counts rejected requests.
// Label:
//   - kind: "unauthenticated", "permission_denied" or "forbidden"
var AuthorizationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_failures_total",
		Help:      "Total number of requests rejected by authentication or authorization checks.",
	},
	[]string{"kind"},
)
