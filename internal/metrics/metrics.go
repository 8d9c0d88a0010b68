// Package metrics holds Prometheus instruments shared by the backend and
// the console.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UsersFetchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_fetch_total",
			Help: "Cumulative number of user-list fetches issued by the console.",
		})

	UsersFetchErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_fetch_errors_total",
			Help: "Cumulative number of failed user-list fetches.",
		})

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result (success, failure, incomplete).",
		}, []string{"result"})

	TableStatePersistErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "table_state_persist_errors_total",
			Help: "Table-state storage failures by operation (read, write).",
		}, []string{"op"})

	UserStoreSeedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_store_seed_total",
			Help: "Times a user store was populated with mock users, by driver.",
		}, []string{"driver"})
)

func init() {
	prometheus.MustRegister(
		UsersFetchTotal,
		UsersFetchErrorsTotal,
		LoginAttemptsTotal,
		TableStatePersistErrorsTotal,
		UserStoreSeedTotal,
	)
}
