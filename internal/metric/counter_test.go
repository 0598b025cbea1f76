package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewLaunchCounter(reg)

	c.Increment("Pacman", "main", ResultOK)
	c.Increment("Pacman", "main", ResultOK)
	c.Increment("Pacman", "post", ResultLaunchError)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Vec().WithLabelValues("Pacman", "main", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Vec().WithLabelValues("Pacman", "post", ResultLaunchError)))
	assert.Equal(t, 2, testutil.CollectAndCount(c.Vec()))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewLaunchCounter(reg)
	assert.Panics(t, func() { NewLaunchCounter(reg) })
}

func TestHandlerForRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewLaunchCounter(reg).Increment("Tetris", "main", ResultExitNonZero)

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tcs_launches_total{item="Tetris",result="exit_nonzero",stage="main"} 1`), body)
}

func TestNop(t *testing.T) {
	var c IncrementalCounter = Nop{}
	assert.NotPanics(t, func() { c.Increment("a", "b", "c") })
}
