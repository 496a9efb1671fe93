package docboost_test

import (
	"math/big"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-docboost"
	"github.com/KimNorgaard/go-docboost/multimap"
)

func TestParseJSON(t *testing.T) {
	in := `{"a":1,"a":2.5,"b":{"c":[1,"x",null]},"d":[{"e":true}],"f":[]}`
	d, err := docboost.ParseJSON([]byte(in))
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "d", "f"}, d.Keys())

	c := d.Multimap().Cursor()
	defer c.Destroy()
	require.True(t, c.Find("a"))
	require.Equal(t, gojson.Number("1"), c.Value())
	require.True(t, c.FindNext("a"))
	require.Equal(t, gojson.Number("2.5"), c.Value())
	require.True(t, c.Find("d"))
	require.IsType(t, []*multimap.Map{}, c.Value())
	require.True(t, c.Find("f"))
	require.Equal(t, []any{}, c.Value())

	vals := collect(d.AllEntries())
	require.Equal(t, int64(1), vals[0].value)
	require.Equal(t, 2.5, vals[1].value)

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, in, string(out))
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"array", `[1]`, "must be an object"},
		{"scalar", `"x"`, "must be an object"},
		{"empty", ``, "invalid json"},
		{"trailing data", `{} {}`, "unexpected data after top-level object"},
		{"missing value", `{"a":}`, "invalid json"},
		{"truncated", `{"a":[1,2`, "invalid json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := docboost.ParseJSON([]byte(tt.input))
			require.Nil(t, d)
			require.ErrorContains(t, err, tt.msg)
		})
	}

	t.Run("max depth", func(t *testing.T) {
		f, err := docboost.NewFactory(docboost.MaxDepth(2))
		require.NoError(t, err)
		_, err = f.ParseJSON([]byte(`{"a":{"b":{}}}`))
		require.ErrorContains(t, err, "max depth of 2")
		_, err = f.ParseJSON([]byte(`{"a":[[1]]}`))
		require.ErrorContains(t, err, "max depth of 2")
		_, err = f.ParseJSON([]byte(`{"a":{"b":1}}`))
		require.NoError(t, err)
	})
}

func TestMarshalJSONValues(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	d := docWith(
		"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"dec", decimal.RequireFromString("12.25"),
		"long", multimap.Long{Value: 7},
		"big", huge,
		"bytes", []byte("hi"),
		"ints", []int{1, 2},
		"quote", `a"b`,
		"nil", nil,
		"doc", docboost.New(),
	)
	out, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t,
		`{"time":"2024-01-02T03:04:05.000Z","dec":12.25,"long":7,"big":123456789012345678901234567890,`+
			`"bytes":"hi","ints":[1,2],"quote":"a\"b","nil":null,"doc":{}}`,
		string(out))

	t.Run("unsupported value", func(t *testing.T) {
		_, err := docWith("ch", make(chan int)).MarshalJSON()
		require.ErrorContains(t, err, "field 'ch'")
	})
}
