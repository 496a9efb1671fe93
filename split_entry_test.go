package docboost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-docboost"
)

func TestSplitEntryVal(t *testing.T) {
	t.Run("one element per occurrence", func(t *testing.T) {
		d := docboost.New()
		d.Multimap().Append("myVal", "3")
		d.Multimap().Append("other", "x")
		d.Multimap().Append("myVal", "5")

		e := d.IntsSplitEntry("myVal")
		v, err := e.Val()
		require.NoError(t, err)
		require.Equal(t, []int{3, 5}, v)
		require.Equal(t, 2, e.Count())
		require.True(t, e.IsAssigned())
	})

	t.Run("absent", func(t *testing.T) {
		d := docWith("a", 1)
		e := d.StringsSplitEntry("b")
		require.Zero(t, e.Count())

		_, err := e.Val()
		require.ErrorIs(t, err, docboost.ErrInexistentEntry)

		v, err := e.ValOrEmpty()
		require.NoError(t, err)
		require.NotNil(t, v)
		require.Empty(t, v)

		def := []string{"d"}
		v, err = e.ValOrDefault(def)
		require.NoError(t, err)
		require.Equal(t, def, v)
		v[0] = "changed"
		require.Equal(t, "d", def[0])
	})

	t.Run("null occurrences", func(t *testing.T) {
		d := docWith("v", "1", "v", nil)
		v, err := d.Int64sSplitEntry("v").Val()
		require.NoError(t, err)
		require.Equal(t, []int64{1, 0}, v)

		_, err = d.Int64sSplitEntry("v").NonEmptyVal()
		require.ErrorIs(t, err, docboost.ErrUnexpectedValue)
		require.ErrorContains(t, err, "a null value was found")
	})

	t.Run("conversion failure names the key", func(t *testing.T) {
		d := docWith("f", "1.5", "f", "oops")
		_, err := d.Float64sSplitEntry("f").Val()
		require.ErrorIs(t, err, docboost.ErrConversion)
		require.ErrorContains(t, err, "'f'")
		require.ErrorContains(t, err, "oops")
	})

	t.Run("untyped", func(t *testing.T) {
		d := docWith("x", 1, "x", "two")
		v, err := d.SplitEntry("x").NonEmptyVal()
		require.NoError(t, err)
		require.Equal(t, []any{1, "two"}, v)
	})
}

func TestSplitEntryPut(t *testing.T) {
	t.Run("replaces every occurrence at the first position", func(t *testing.T) {
		d := docWith("a", 1, "tag", "x", "b", 2, "tag", "y", "tag", "z")
		require.NoError(t, d.StringsSplitEntry("tag").Put([]string{"p", "q"}))
		require.Equal(t, []pair{{"a", 1}, {"tag", "p"}, {"tag", "q"}, {"b", 2}}, rawPairs(d))
	})

	t.Run("appends a missing key", func(t *testing.T) {
		d := docWith("a", 1)
		require.NoError(t, d.IntsSplitEntry("n").Put([]int{1, 2}))
		require.Equal(t, []pair{{"a", 1}, {"n", 1}, {"n", 2}}, rawPairs(d))
	})

	t.Run("empty list removes the key", func(t *testing.T) {
		d := docWith("tag", "x", "a", 1, "tag", "y")
		require.NoError(t, d.StringsSplitEntry("tag").Put(nil))
		require.Equal(t, []pair{{"a", 1}}, rawPairs(d))
	})

	t.Run("PutConverted", func(t *testing.T) {
		d := docboost.New()
		require.NoError(t, d.Int16sSplitEntry("n").PutConverted([]any{"1", 2.0}))
		require.Equal(t, []pair{{"n", int16(1)}, {"n", int16(2)}}, rawPairs(d))

		err := d.Int16sSplitEntry("n").PutConverted([]any{"bad"})
		require.ErrorIs(t, err, docboost.ErrConversion)
		require.Equal(t, 2, d.TotalEntries())
	})

	t.Run("Add", func(t *testing.T) {
		d := docWith("tag", "x", "b", 2)
		e := d.StringsSplitEntry("tag")
		require.NoError(t, e.Add("y"))
		require.NoError(t, d.BoolsSplitEntry("flag").Add(true))
		require.Equal(t, []pair{{"tag", "x"}, {"tag", "y"}, {"b", 2}, {"flag", true}}, rawPairs(d))
	})
}

func TestSplitEntryRemove(t *testing.T) {
	d := docWith("tag", "x", "a", 1, "tag", "y")
	require.NoError(t, d.StringsSplitEntry("tag").Remove())
	require.Equal(t, []pair{{"a", 1}}, rawPairs(d))

	err := d.StringsSplitEntry("tag").Remove()
	require.ErrorIs(t, err, docboost.ErrInexistentEntry)
	require.NoError(t, d.StringsSplitEntry("tag").RemoveWith(docboost.Lenient))
	require.Equal(t, 1, d.TotalEntries())
}
