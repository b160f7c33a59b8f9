package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(src), &v))
	return v
}

func TestRenderNestedObjects(t *testing.T) {
	v := decode(t, `{"a": {"b": 1, "c": {"d": 2}}}`)

	want := "  - a:\n" +
		"    - b: 1\n" +
		"    - c:\n" +
		"      - d: 2"

	assert.Equal(t, want, Render(v, 2))
}

func TestRenderLeafLiterals(t *testing.T) {
	v := decode(t, `{"name": "x", "count": 3, "ratio": 0.5, "on": true, "gone": null, "tags": ["a", "b"]}`)

	want := `- name: "x"
- count: 3
- ratio: 0.5
- on: true
- gone: null
- tags: ["a","b"]`

	assert.Equal(t, want, Render(v, 0))
}

func TestRenderPreservesKeyOrder(t *testing.T) {
	// Keys deliberately out of lexical order; output must follow the document
	v := decode(t, `{"zone": "z", "armor": 1, "mode": "m"}`)

	want := `- zone: "z"
- armor: 1
- mode: "m"`

	assert.Equal(t, want, Render(v, 0))
}

func TestRenderIsIdempotent(t *testing.T) {
	v := decode(t, `{"a": {"b": [1, {"c": true}]}, "d": "x"}`)

	first := Render(v, 8)
	assert.Equal(t, first, Render(v, 8))
}

func TestRenderNonObjectIsEmpty(t *testing.T) {
	for _, src := range []string{`null`, `true`, `42`, `"text"`, `[1, 2]`} {
		assert.Empty(t, Render(decode(t, src), 4), "input %s", src)
	}

	var zero Value
	assert.Empty(t, Render(zero, 4))
}

func TestRenderEmptyObject(t *testing.T) {
	assert.Empty(t, Render(decode(t, `{}`), 4))
}

func TestRenderListOfObjectsStaysOnOneLine(t *testing.T) {
	v := decode(t, `{"rules": [{"port": 80}, {"port": 443}]}`)

	assert.Equal(t, `- rules: [{"port":80},{"port":443}]`, Render(v, 0))
}

func TestRenderConstructedValue(t *testing.T) {
	v := ObjectOf(
		Field{Name: "name", Value: StringOf("x")},
		Field{Name: "count", Value: NumberOf("2")},
		Field{Name: "flags", Value: ListOf(BoolOf(true))},
	)

	want := `- name: "x"
- count: 2
- flags: [true]`
	assert.Equal(t, want, Render(v, 0))
}

func TestValueMarshalRoundTrip(t *testing.T) {
	src := `{"b":1,"a":{"x":null,"y":[true,"s",2.5]}}`

	v := decode(t, src)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

func TestValueDecodeRejectsGarbage(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":`), &v))
}
