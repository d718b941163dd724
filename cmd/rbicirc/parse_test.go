package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/circulars"
	main "github.com/fwojciec/circulars/cmd/rbicirc"
	"github.com/fwojciec/circulars/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `<html><body>
<table class="tablebg">
<tr><td colspan="2">Circulars</td></tr>
<tr><th>Circular No</th><th>Date</th></tr>
<tr><td><a href="https://example.org/1.aspx">001</a></td><td>01-Jan-2024</td></tr>
</table>
</body></html>`

const detailPage = `<html><body>
<table class="tablebg">
<tr><td class="tableheader"><b>Interest Rates</b></td></tr>
<tr><td>
<p>RBI/2024-25/07<br>DOR.1/2024-25</p>
<p align="right">April 2, 2024</p>
<p>All Banks</p>
<p>Madam / Dear Sir,</p>
<p class="head">Scope</p>
<p>Applies to all banks.</p>
</td></tr>
</table>
</body></html>`

func writeHTML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseDeps(stdout *bytes.Buffer) *main.Dependencies {
	markers := circulars.DefaultMarkers()
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  &bytes.Buffer{},
		Index:   goquery.NewIndexParser(markers),
		Details: goquery.NewDetailParser(markers),
	}
}

func TestParseIndexCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints index as JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseIndexCmd{File: writeHTML(t, indexPage)}

		err := cmd.Run(parseDeps(stdout))

		require.NoError(t, err)
		var got circulars.IndexResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Circulars", got.Title)
		assert.Equal(t, []string{"Circular No", "Date"}, got.Headers)
		require.Len(t, got.Circulars, 1)
		assert.Equal(t, "https://example.org/1.aspx", got.Circulars[0].Link())
	})

	t.Run("prints error object when table is missing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseIndexCmd{File: writeHTML(t, "<html><body><p>maintenance</p></body></html>")}

		err := cmd.Run(parseDeps(stdout))

		require.Error(t, err)
		assert.JSONEq(t, `{"error":"Table not found"}`, stdout.String())
	})

	t.Run("returns error for unreadable file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseIndexCmd{File: filepath.Join(t.TempDir(), "missing.html")}

		err := cmd.Run(parseDeps(stdout))

		require.Error(t, err)
		assert.Empty(t, stdout.String())
	})
}

func TestParseDetailCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints detail record as JSON", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseDetailCmd{File: writeHTML(t, detailPage)}

		err := cmd.Run(parseDeps(stdout))

		require.NoError(t, err)
		var got circulars.DetailRecord
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Interest Rates", got.Title)
		assert.Equal(t, "RBI/2024-25/07", got.CircularNumber)
		assert.Equal(t, "DOR.1/2024-25", got.ReferenceNumber)
		assert.Equal(t, "All Banks", got.MeantFor)
		assert.Equal(t, []circulars.Section{{Title: "Scope", Content: "Applies to all banks."}}, got.ContentSections)
	})

	t.Run("prints error object when region is missing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		cmd := &main.ParseDetailCmd{File: writeHTML(t, "<html><body></body></html>")}

		err := cmd.Run(parseDeps(stdout))

		require.Error(t, err)
		assert.JSONEq(t, `{"error":"Table not found at the specified path"}`, stdout.String())
	})
}

func TestMain_Run_ParseDetail(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"parse", "detail", writeHTML(t, detailPage)}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"circularNumber": "RBI/2024-25/07"`)
}
