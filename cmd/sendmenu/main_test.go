package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymenu/internal/digest"
)

type stubRunner struct {
	opts digest.Options
}

func (s *stubRunner) Run(_ context.Context, opts digest.Options) (digest.Report, error) {
	s.opts = opts
	return digest.Report{RunID: "r1", Date: "2024-01-02", Sent: 3, Failed: 1}, nil
}

func setFlags(t *testing.T, date, email string, dryRun bool) {
	t.Helper()
	dateFlag, emailFlag, dryRunFlag = date, email, dryRun
	t.Cleanup(func() { dateFlag, emailFlag, dryRunFlag = "", "", false })
}

func TestRunDigest(t *testing.T) {
	setFlags(t, "2024-01-02", " Someone@Example.edu", true)
	loc := time.FixedZone("EST", -5*3600)
	r := &stubRunner{}
	var out bytes.Buffer

	require.NoError(t, runDigest(context.Background(), r, loc, &out))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), r.opts.Date)
	assert.Equal(t, "someone@example.edu", r.opts.Email)
	assert.True(t, r.opts.DryRun)

	var report digest.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 3, report.Sent)
	assert.Equal(t, 1, report.Failed)
}

func TestRunDigest_BadDate(t *testing.T) {
	setFlags(t, "01/02/2024", "", false)
	r := &stubRunner{}

	err := runDigest(context.Background(), r, time.UTC, &bytes.Buffer{})
	assert.ErrorContains(t, err, "YYYY-MM-DD")
	assert.True(t, r.opts.Date.IsZero())
}
