package jsonfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Note  *string `json:"note"`
}

func TestMarshalLayout(t *testing.T) {
	data, err := Marshal([]sample{{Name: "Mirror of Kalandra", Count: 1}})
	require.NoError(t, err)
	want := "[\n  {\n    \"name\": \"Mirror of Kalandra\",\n    \"count\": 1,\n    \"note\": null\n  }\n]"
	assert.Equal(t, want, string(data))
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal([]sample{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMarshalEscapesNonASCII(t *testing.T) {
	data, err := Marshal([]string{"Mjölner", "<Tabula & Rasa>", "🎲"})
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"Mj\u00f6lner"`)
	assert.Contains(t, out, `"<Tabula & Rasa>"`)
	assert.Contains(t, out, `"\ud83c\udfb2"`)
	for _, r := range out {
		assert.Less(t, r, rune(128))
	}

	var back []string
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"Mjölner", "<Tabula & Rasa>", "🎲"}, back)
}

func TestEscapeNonASCIIPassThrough(t *testing.T) {
	in := []byte(`{"a":"b"}`)
	assert.Equal(t, in, EscapeNonASCII(in))
}

func TestDecode(t *testing.T) {
	var rows []sample
	require.NoError(t, Decode(strings.NewReader(`[{"name":"a","count":2,"note":"x"}]`), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "x", *rows[0].Note)

	err := Decode(strings.NewReader(`[{"name":"a","count":2,"colour":"red"}]`), &rows)
	assert.ErrorContains(t, err, "unknown field")

	err = Decode(strings.NewReader(`[] []`), &rows)
	assert.ErrorIs(t, err, ErrTrailingData)

	assert.Error(t, Decode(strings.NewReader(`[{`), &rows))
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	note := "Ünique"
	in := []sample{{Name: "b", Count: 2, Note: &note}, {Name: "a"}}
	require.NoError(t, Write(&buf, in))

	var out []sample
	require.NoError(t, Decode(bytes.NewReader(buf.Bytes()), &out))
	assert.Equal(t, in, out)

	again, err := Marshal(out)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(again))
}
