package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
)

func TestJSONLSinkRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "journal.jsonl")
	sink, err := NewJSONLSink(path, 1, 2, 1)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	ev := coremetrics.EpochEvent{RunID: "r", System: "s", Efficiency: 99}
	for i := 0; i < 100; i++ {
		ev.Epoch = i
		require.NoError(t, sink.RecordEpoch(ev))
	}
	files, err := filepath.Glob(journalPattern(path))
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestJSONLSinkQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	sink, err := NewJSONLSink(path, 10, 1, 1)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	require.NoError(t, sink.RecordEpoch(coremetrics.EpochEvent{RunID: "r1", System: "a", Epoch: 0}))
	require.NoError(t, sink.RecordEpoch(coremetrics.EpochEvent{RunID: "r1", System: "b", Epoch: 0}))
	require.NoError(t, sink.RecordEpoch(coremetrics.EpochEvent{RunID: "r2", System: "a", Epoch: 0}))
	require.NoError(t, sink.RecordRun(coremetrics.RunSummary{RunID: "r1", System: "a", Epochs: 1}))

	all, err := sink.Query(JSONLQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	out, err := sink.Query(JSONLQuery{RunID: "r1", System: "a"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, KindEpoch, out[0].Kind)
	assert.Equal(t, KindRun, out[1].Kind)
	assert.Equal(t, 1, out[1].Run.Epochs)

	runs, err := ReadJSONL(path, JSONLQuery{Kind: KindRun})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
