package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Name     string   `json:"name"`
	Features []string `json:"features"`
}

type testDoc struct {
	Title string     `json:"title"`
	Tags  []string   `json:"tags"`
	Notes []string   `json:"notes"`
	Items []testItem `json:"items"`
}

func (d *testDoc) Normalize() {
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Notes == nil {
		d.Notes = []string{}
	}
	if d.Items == nil {
		d.Items = []testItem{}
	}
}

func TestParseStrictMatchesDirectDecode(t *testing.T) {
	raw := `{"title":"T","tags":["a","b"],"items":[{"name":"x","features":["f"]}]}`

	got, err := Parse[testDoc](raw, testSchema)
	require.NoError(t, err)

	var want testDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &want))
	want.Normalize()

	assert.Equal(t, &want, got)
}

func TestParseCaseInsensitiveMembers(t *testing.T) {
	got, err := Parse[testDoc](`{"TITLE":"T","Tags":["a"]}`, testSchema)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestParseCoercesStringLists(t *testing.T) {
	raw := "```json\n{\"title\":\"T\",\"tags\":\"a, b ,c\",\"items\":[{\"name\":\"A\",\"features\":\"fast, efficient\"}]}\n```"

	got, err := Parse[testDoc](raw, testSchema)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, got.Tags)
	require.Len(t, got.Items, 1)
	assert.Equal(t, []string{"fast", "efficient"}, got.Items[0].Features)
	assert.Equal(t, []string{}, got.Notes)
}

func TestParseRejectsHTMLBeforeDecoding(t *testing.T) {
	raw := "  <html><body>502 Bad Gateway</body></html>"

	_, err := Parse[testDoc](raw, testSchema)
	require.Error(t, err)

	var rerr *ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, NotJSON, rerr.Kind)
	assert.Nil(t, rerr.Err, "no JSON decode should have been attempted")
	assert.Contains(t, rerr.Msg, "error page")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse[testDoc](`{"title": "T", "tags": [`, testSchema)
	assert.True(t, IsKind(err, NotJSON))
}

func TestParseWrongShape(t *testing.T) {
	_, err := Parse[testDoc](`["title","tags"]`, testSchema)
	assert.True(t, IsKind(err, WrongShape))

	_, err = Parse[testDoc](`null`, testSchema)
	assert.True(t, IsKind(err, WrongShape))
}

func TestParseUnparseableAfterCoercion(t *testing.T) {
	// Valid JSON, but items is a string the schema cannot repair.
	_, err := Parse[testDoc](`{"title":"T","items":"CPU, GPU"}`, testSchema)
	assert.True(t, IsKind(err, UnparseableAfterCoercion))

	_, err = Parse[testDoc](`{"title":42}`, testSchema)
	assert.True(t, IsKind(err, UnparseableAfterCoercion))
}

func TestParseKeepsRawPrefixBounded(t *testing.T) {
	raw := "<" + strings.Repeat("é", RawPrefixLimit)

	_, err := Parse[testDoc](raw, testSchema)
	var rerr *ResponseError
	require.ErrorAs(t, err, &rerr)
	assert.LessOrEqual(t, len(rerr.Raw), RawPrefixLimit)
	assert.True(t, strings.HasPrefix(raw, rerr.Raw))
}
