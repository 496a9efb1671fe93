package formatter_test

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-docboost/internal/formatter"
	"github.com/KimNorgaard/go-docboost/multimap"
)

func object(kv ...any) *multimap.Map {
	m := multimap.New()
	for i := 0; i < len(kv); i += 2 {
		m.Append(kv[i].(string), kv[i+1])
	}
	return m
}

// Centralized test cases to be used across different format settings.
var testCases = []struct {
	name             string
	m                *multimap.Map
	expectedCompact  string
	expectedIndented string // 2 spaces
}{
	{
		name:             "Empty object",
		m:                object(),
		expectedCompact:  "{}",
		expectedIndented: "{}",
	},
	{
		name:             "Scalars",
		m:                object("s", "hello world", "i", 123, "b", true, "n", nil),
		expectedCompact:  `{ s: "hello world", i: 123, b: true, n: null }`,
		expectedIndented: "{\n  s: \"hello world\",\n  i: 123,\n  b: true,\n  n: null\n}",
	},
	{
		name:             "Duplicate keys keep their order",
		m:                object("x", "0", "z", "1", "x", "3"),
		expectedCompact:  `{ x: "0", z: "1", x: "3" }`,
		expectedIndented: "{\n  x: \"0\",\n  z: \"1\",\n  x: \"3\"\n}",
	},
	{
		name:             "Array",
		m:                object("arr", []any{1, "two"}, "empty", []string{}),
		expectedCompact:  `{ arr: [1, "two"], empty: [] }`,
		expectedIndented: "{\n  arr: [\n    1,\n    \"two\"\n  ],\n  empty: []\n}",
	},
	{
		name:             "Nested object",
		m:                object("sub", object("value1", "nested")),
		expectedCompact:  `{ sub: { value1: "nested" } }`,
		expectedIndented: "{\n  sub: {\n    value1: \"nested\"\n  }\n}",
	},
	{
		name:             "Array of objects",
		m:                object("docs", []*multimap.Map{object("a", 1), object()}),
		expectedCompact:  `{ docs: [{ a: 1 }, {}] }`,
		expectedIndented: "{\n  docs: [\n    {\n      a: 1\n    },\n    {}\n  ]\n}",
	},
	{
		name:             "Quoted keys",
		m:                object("my key", 1, "", 2, "a.b", 3),
		expectedCompact:  `{ "my key": 1, "": 2, "a.b": 3 }`,
		expectedIndented: "{\n  \"my key\": 1,\n  \"\": 2,\n  \"a.b\": 3\n}",
	},
}

func TestFormat(t *testing.T) {
	for _, tc := range testCases {
		t.Run(tc.name+"/compact", func(t *testing.T) {
			var buf bytes.Buffer
			zero := 0
			require.NoError(t, formatter.New(&buf, &zero).Format(tc.m))
			require.Equal(t, tc.expectedCompact, buf.String())
		})
		t.Run(tc.name+"/indented", func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, formatter.New(&buf, nil).Format(tc.m))
			require.Equal(t, tc.expectedIndented, buf.String())
		})
	}
}

func TestFormatValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"boxed int", multimap.Int{Value: 7}, "7"},
		{"boxed bool", multimap.Bool{Value: false}, "false"},
		{"int64", int64(-3), "-3"},
		{"uint8", uint8(200), "200"},
		{"integral float", 2.0, "2.0"},
		{"float", 1.156, "1.156"},
		{"float32", float32(0.5), "0.5"},
		{"large float", 1e21, "1e+21"},
		{"decimal", decimal.RequireFromString("3.140"), "3.14"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 70), "1180591620717411303424"},
		{"time", time.Date(2017, 1, 2, 3, 4, 5, 6e6, time.UTC), `"2017-01-02T03:04:05.006Z"`},
		{"escapes", "a\"b\\c\nd\te\x01", `"a\"b\\c\nd\te\u0001"`},
		{"typed nil", (*multimap.Map)(nil), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zero := 0
			require.NoError(t, formatter.New(&buf, &zero).Format(object("v", tt.value)))
			require.Equal(t, "{ v: "+tt.want+" }", buf.String())
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Run("unsupported value", func(t *testing.T) {
		var buf bytes.Buffer
		err := formatter.New(&buf, nil).Format(object("ch", make(chan int)))
		require.ErrorContains(t, err, "maml: unsupported value type chan int")
	})

	t.Run("non-finite float", func(t *testing.T) {
		var buf bytes.Buffer
		err := formatter.New(&buf, nil).Format(object("f", math.Inf(1)))
		require.ErrorContains(t, err, "unsupported float value")
	})

	t.Run("write error", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := formatter.New(failingWriter{errBoom}, nil).Format(object("a", 1))
		require.ErrorIs(t, err, errBoom)
	})
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestQuote(t *testing.T) {
	require.Equal(t, `"plain"`, formatter.Quote("plain"))
	require.Equal(t, `"été \u007F"`, formatter.Quote("été \x7f"))
}
