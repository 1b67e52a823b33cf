package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterGoalsUpserted.WithLabelValues("gym", "created").Inc()
	m.CounterSessionsRecorded.WithLabelValues("pitching").Add(2)
	m.CounterEmbeddingRetries.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterGoalsUpserted.WithLabelValues("gym", "created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterSessionsRecorded.WithLabelValues("pitching")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["tracker_test_server_goals_upserted"])
	assert.True(t, names["tracker_test_server_embedding_retries"])
}
