package goquery_test

import (
	"testing"

	"github.com/fwojciec/circulars/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormReader_HiddenFields(t *testing.T) {
	t.Parallel()

	t.Run("collects named hidden inputs", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><form method="post">
<input type="hidden" name="__VIEWSTATE" value="abc==">
<input type="hidden" name="__EVENTVALIDATION" value="xyz">
<input type="hidden" name="hdnYear">
<input type="hidden" value="nameless">
<input type="text" name="UsrFontCntr$txtSearch" value="visible">
</form>`

		fields, err := goquery.NewFormReader().HiddenFields(html)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"__VIEWSTATE":       "abc==",
			"__EVENTVALIDATION": "xyz",
			"hdnYear":           "",
		}, fields)
	})

	t.Run("returns empty map without a form", func(t *testing.T) {
		t.Parallel()

		fields, err := goquery.NewFormReader().HiddenFields(`<p>no form</p>`)

		require.NoError(t, err)
		assert.Empty(t, fields)
	})
}
