package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/source"
)

func acmeReport(t *testing.T) *analysis.Report {
	t.Helper()
	e := analysis.NewEngine(source.NewFileSource("../../pkg/core/source/testdata"))
	rep, err := e.Analyze(context.Background(), "ACME.NS")
	require.NoError(t, err)
	return rep
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, acmeReport(t), "table", true))

	out := buf.String()
	assert.Contains(t, out, "ACME.NS (INR, TTM / Last Fiscal Year)")
	assert.Contains(t, out, "Moderate")
	assert.Contains(t, out, "152")
	assert.Contains(t, out, "* STRESS: Taking over 4 months to pay their own suppliers.")
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, acmeReport(t), "json", false))

	var rep analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, "ACME.NS", rep.Meta.Ticker)
}

func TestWriteReportUnknownFormat(t *testing.T) {
	assert.Error(t, writeReport(&bytes.Buffer{}, acmeReport(t), "yaml", false))
}
