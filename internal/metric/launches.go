package metric

import "github.com/prometheus/client_golang/prometheus"

// Launch results.
const (
	ResultOK          = "ok"
	ResultExitNonZero = "exit_nonzero"
	ResultLaunchError = "launch_error"
)

// NewLaunchCounter counts launched commands by item, stage and result.
func NewLaunchCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg,
		"tcs_launches_total",
		"Commands started from menu buttons, by item, stage (pre, main, post) and result.",
		"item", "stage", "result")
}
