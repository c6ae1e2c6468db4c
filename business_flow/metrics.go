package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	accountSignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Registrations submitted for review",
		},
		[]string{"account_type"},
	)

	accountDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_decisions_total",
			Help: "Admin review decisions on pending registrations",
		},
		[]string{"decision"},
	)

	accountLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Account login attempts partitioned by outcome",
		},
		[]string{"result"},
	)

	passwordResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "password_resets_total",
			Help: "Password recovery steps completed",
		},
		[]string{"stage"},
	)
)

// loginResult maps a login error to a low-cardinality metric label
func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsAccountPending(err):
		return "pending"
	case IsAccountRejected(err):
		return "rejected"
	case IsInvalidActivationCode(err):
		return "invalid_code"
	case IsActivationCodeExpired(err):
		return "expired_code"
	case IsUnauthorized(err):
		return "invalid_credentials"
	default:
		return "error"
	}
}
