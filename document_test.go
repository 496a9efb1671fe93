package docboost_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-docboost"
	"github.com/KimNorgaard/go-docboost/multimap"
)

type pair struct {
	key   string
	value any
}

// rawPairs lists the stored entries of d without any conversion.
func rawPairs(d *docboost.Document) []pair {
	c := d.Multimap().Cursor()
	defer c.Destroy()
	out := []pair{}
	for c.Next() {
		out = append(out, pair{c.Key(), c.Value()})
	}
	return out
}

func collect(seq iter.Seq[docboost.KeyValue]) []pair {
	out := []pair{}
	for kv := range seq {
		out = append(out, pair{kv.Key(), kv.Value()})
	}
	return out
}

func TestEmptyDocument(t *testing.T) {
	d := docboost.New()
	require.Zero(t, d.TotalEntries())
	require.Empty(t, d.Keys())
	require.True(t, d.IsEmpty())
	require.Empty(t, collect(d.AllEntries()))
	require.Empty(t, collect(d.UnitEntries()))
}

func TestDocumentEntries(t *testing.T) {
	d := docWith("x", "0", "z", "1", "y", "2", "x", "3", "z", "4")

	require.Equal(t, 5, d.TotalEntries())
	require.False(t, d.IsEmpty())
	require.Equal(t, []string{"x", "z", "y"}, d.Keys())

	require.Equal(t, []pair{
		{"x", "0"}, {"z", "1"}, {"y", "2"}, {"x", "3"}, {"z", "4"},
	}, collect(d.AllEntries()))

	require.Equal(t, []pair{
		{"x", "0"}, {"z", "1"}, {"y", "2"},
	}, collect(d.UnitEntries()))

	t.Run("sequences restart", func(t *testing.T) {
		seq := d.AllEntries()
		require.Len(t, collect(seq), 5)
		require.Len(t, collect(seq), 5)
	})

	t.Run("values are normalised", func(t *testing.T) {
		sub := multimap.New()
		d := docWith("sub", sub, "n", multimap.Int{Value: 4})
		got := collect(d.AllEntries())
		require.Len(t, got, 2)
		doc, ok := got[0].value.(*docboost.Document)
		require.True(t, ok, "got %T", got[0].value)
		require.Same(t, sub, doc.Multimap())
		require.Equal(t, int32(4), got[1].value)
	})

	t.Run("KeyValue", func(t *testing.T) {
		kv := docboost.NewKeyValue("a", 1)
		require.Equal(t, "a", kv.Key())
		require.Equal(t, 1, kv.Value())
		require.Equal(t, "a=1", kv.String())
	})
}

func TestDocumentIterationReleasesCursors(t *testing.T) {
	d := docWith("a", 1, "b", 2, "a", 3)
	m := d.Multimap()

	t.Run("complete", func(t *testing.T) {
		for range d.AllEntries() {
			require.Equal(t, 1, m.OpenCursors())
		}
		require.Zero(t, m.OpenCursors())
	})

	t.Run("break", func(t *testing.T) {
		for range d.UnitEntries() {
			break
		}
		require.Zero(t, m.OpenCursors())
	})

	t.Run("panic", func(t *testing.T) {
		require.Panics(t, func() {
			for range d.AllEntries() {
				panic("boom")
			}
		})
		require.Zero(t, m.OpenCursors())
	})

	t.Run("pull", func(t *testing.T) {
		next, stop := iter.Pull(d.AllEntries())
		kv, ok := next()
		require.True(t, ok)
		require.Equal(t, "a", kv.Key())
		require.Equal(t, 1, m.OpenCursors())
		stop()
		require.Zero(t, m.OpenCursors())
	})

	t.Run("entries", func(t *testing.T) {
		_, _ = d.IntEntry("a").Val()
		_ = d.IntEntry("b").Put(5)
		_ = d.IntsSplitEntry("a").Count()
		_ = d.IntEntry("zz").RemoveWith(docboost.Lenient)
		require.Zero(t, m.OpenCursors())
	})
}

func TestDocumentClear(t *testing.T) {
	d := docWith("a", 1, "b", 2)
	d.Clear()
	require.True(t, d.IsEmpty())
	require.Empty(t, d.Keys())
	require.False(t, d.IntEntry("a").IsAssigned())
}

func TestDocumentsShareStorage(t *testing.T) {
	m := multimap.New()
	one, two := docboost.Wrap(m), docboost.Wrap(m)

	require.NoError(t, one.StringEntry("k").Put("v"))
	v, err := two.StringEntry("k").Val()
	require.NoError(t, err)
	require.Equal(t, "v", v)

	two.Clear()
	require.True(t, one.IsEmpty())
}

func TestDocumentFactories(t *testing.T) {
	d := docWith("v", "12")

	require.Equal(t, "v", d.StringEntry("v").Key())
	require.Same(t, d, d.IntEntry("v").Document())

	i32, err := d.Int32Entry("v").Val()
	require.NoError(t, err)
	require.Equal(t, int32(12), i32)

	big, err := d.BigIntEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, "12", big.String())

	dec, err := d.DecimalEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, "12", dec.String())

	i16s, err := d.Int16sEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, []int16{12}, i16s)

	i64s, err := d.Int64sEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, []int64{12}, i64s)

	f32s, err := d.Float32sEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, []float32{12}, f32s)

	ds, err := d.DecimalsSplitEntry("v").Val()
	require.NoError(t, err)
	require.Len(t, ds, 1)

	f32split, err := d.Float32sSplitEntry("v").Val()
	require.NoError(t, err)
	require.Equal(t, []float32{12}, f32split)

	ts := docWith("at", "2024-05-06T07:08:09Z")
	at, err := ts.TimeEntry("at").Val()
	require.NoError(t, err)
	require.Equal(t, 2024, at.Year())
	require.Equal(t, 9, at.Second())
}
