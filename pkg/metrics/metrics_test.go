package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestsDispatchedTotal(t *testing.T) {
	c := RequestsDispatchedTotal.WithLabelValues("CreatePerson", "command", "success")
	before := testutil.ToFloat64(c)

	c.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestDutiesAssignedTotal(t *testing.T) {
	c := DutiesAssignedTotal.WithLabelValues("retirement")
	before := testutil.ToFloat64(c)

	c.Inc()
	c.Inc()

	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestHTTPRequestsTotal(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("/Person", "GET", "200").Inc()

	problems, err := testutil.CollectAndLint(HTTPRequestsTotal)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}
