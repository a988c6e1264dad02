package rbmetrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_UpdatesCounters(t *testing.T) {
	m := New()
	m.Observe(0.042, 10, 3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "rulebox_batch_inputs_total 10"))
	assert.True(t, strings.Contains(body, "rulebox_batch_labels_assigned_total 3"))
}

func TestNew_SeparateRegistriesDoNotConflict(t *testing.T) {
	m1 := New()
	m2 := New()
	assert.NotNil(t, m1)
	assert.NotNil(t, m2)
}
