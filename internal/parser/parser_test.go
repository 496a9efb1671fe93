package parser_test

import (
	"errors"
	"math/big"
	"testing"

	perrors "github.com/KimNorgaard/go-docboost/errors"
	"github.com/KimNorgaard/go-docboost/internal/lexer"
	"github.com/KimNorgaard/go-docboost/internal/parser"
	"github.com/KimNorgaard/go-docboost/multimap"
	"github.com/stretchr/testify/require"
)

type pair struct {
	key   string
	value any
}

func pairs(m *multimap.Map) []pair {
	c := m.Cursor()
	defer c.Destroy()
	out := []pair{}
	for c.Next() {
		out = append(out, pair{c.Key(), c.Value()})
	}
	return out
}

func parse(t *testing.T, input string, opts ...parser.Option) (*multimap.Map, error) {
	t.Helper()
	return parser.New(lexer.New([]byte(input)), opts...).Parse()
}

func TestParseScalars(t *testing.T) {
	m, err := parse(t, `{
  s: "hello"
  i: 42
  neg: -7
  f: 1.5
  t: true
  n: null
  huge: 123456789012345678901234567890
}`)
	require.NoError(t, err)

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.Equal(t, []pair{
		{"s", "hello"},
		{"i", int64(42)},
		{"neg", int64(-7)},
		{"f", 1.5},
		{"t", true},
		{"n", nil},
		{"huge", huge},
	}, pairs(m))
}

func TestParseKeepsOrderAndDuplicates(t *testing.T) {
	m, err := parse(t, `{ x: "0", z: "1", y: "2", x: "3", z: "4" }`)
	require.NoError(t, err)
	require.Equal(t, []pair{
		{"x", "0"}, {"z", "1"}, {"y", "2"}, {"x", "3"}, {"z", "4"},
	}, pairs(m))
}

func TestParseKeys(t *testing.T) {
	m, err := parse(t, `{ "quoted key": 1, 123: 2, null: 3 }`)
	require.NoError(t, err)
	require.Equal(t, []pair{
		{"quoted key", int64(1)}, {"123", int64(2)}, {"null", int64(3)},
	}, pairs(m))
}

func TestParseNested(t *testing.T) {
	m, err := parse(t, `{
  sub: { value1: "nested" }
  docs: [{ a: 1 }, { a: 2 }]
  mixed: [1, "two", [3]]
  empty: []
}`)
	require.NoError(t, err)

	c := m.Cursor()
	defer c.Destroy()

	require.True(t, c.Find("sub"))
	sub, ok := c.Value().(*multimap.Map)
	require.True(t, ok)
	require.Equal(t, []pair{{"value1", "nested"}}, pairs(sub))

	require.True(t, c.Find("docs"))
	docs, ok := c.Value().([]*multimap.Map)
	require.True(t, ok, "an array of objects is a []*multimap.Map, got %T", c.Value())
	require.Len(t, docs, 2)
	require.Equal(t, []pair{{"a", int64(2)}}, pairs(docs[1]))

	require.True(t, c.Find("mixed"))
	require.Equal(t, []any{int64(1), "two", []any{int64(3)}}, c.Value())

	require.True(t, c.Find("empty"))
	require.Equal(t, []any{}, c.Value())
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# just a comment\n"} {
		m, err := parse(t, input)
		require.NoError(t, err)
		require.Equal(t, 0, m.Len())
	}
}

func TestParseMapFactory(t *testing.T) {
	created := 0
	m, err := parse(t, `{ a: { b: {} } }`, parser.WithMapFactory(func() *multimap.Map {
		created++
		return multimap.New()
	}))
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
	require.Equal(t, 3, created)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		msg    string
		line   int
		column int
	}{
		{"top level array", `[1, 2]`, "top-level value must be an object, got [", 1, 1},
		{"top level scalar", `"abc"`, `top-level value must be an object, got STRING ("abc")`, 1, 1},
		{"missing colon", "{\n  a 1\n}", `expected ':' after key "a", got INT ("1")`, 2, 5},
		{"bare word", `{ a: hello }`, "unquoted string value: hello", 1, 6},
		{"bad number", `{ a: 012 }`, "invalid number format: 012", 1, 6},
		{"unterminated object", `{ a: 1`, "unterminated object, expected '}' got EOF", 1, 1},
		{"unterminated array", `{ a: [1, 2 }`, "unexpected }, expected a value", 1, 12},
		{"trailing garbage", `{} {}`, "unexpected token after main value: {", 1, 4},
		{"bad string", `{ a: "\q" }`, `invalid escape sequence \q`, 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.Error(t, err)

			var perrs perrors.ParseErrors
			require.True(t, errors.As(err, &perrs))
			require.Equal(t, tt.msg, perrs[0].Message)
			require.Equal(t, tt.line, perrs[0].Line)
			require.Equal(t, tt.column, perrs[0].Column)

			var single perrors.ParseError
			require.True(t, errors.As(err, &single))
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	_, err := parse(t, `{ a: { b: { c: 1 } } }`, parser.WithMaxDepth(2))
	require.ErrorContains(t, err, "exceeded max depth of 2")

	_, err = parse(t, `{ a: { b: 1 } }`, parser.WithMaxDepth(2))
	require.NoError(t, err)
}
