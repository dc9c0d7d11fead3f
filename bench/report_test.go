package bench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Summarize(t *testing.T) {
	r := Result{TopK: 2, Runs: []time.Duration{10, 20, 31}}
	r.summarize()
	assert.Equal(t, time.Duration(20), r.Average)
	assert.Equal(t, time.Duration(10), r.Min)
	assert.Equal(t, time.Duration(31), r.Max)

	empty := Result{}
	empty.summarize()
	assert.Zero(t, empty.Average)
}

func TestResult_Line(t *testing.T) {
	r := Result{TopK: 25, Average: 1234567 * time.Nanosecond}
	assert.Equal(t, "Average time for top_k = 25: 1234567 ns", r.Line())
}

func TestReport_WriteText(t *testing.T) {
	report := &Report{Results: []Result{
		{TopK: 1, Average: 5},
		{TopK: 2, Average: 7},
	}}
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	assert.Equal(t, "Average time for top_k = 1: 5 ns\nAverage time for top_k = 2: 7 ns\n", buf.String())
}

func TestReport_WriteTable(t *testing.T) {
	report := &Report{Results: []Result{
		{TopK: 5, Runs: []time.Duration{1, 2}, Average: 1, Min: 1, Max: 2, Returned: 5, Verified: true},
	}}
	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "top_k")
	assert.Contains(t, out, "avg ns")
	assert.Contains(t, out, "true")
}
