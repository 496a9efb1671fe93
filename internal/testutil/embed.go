// Package testutil holds the document fixtures shared by the codec tests.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Fixtures returns the base names of the fixtures that exist in every one of
// the given formats, e.g. Fixtures("maml", "json") lists "order" when both
// order.maml and order.json exist.
func Fixtures(exts ...string) ([]string, error) {
	entries, err := fs.ReadDir(TestdataFS, "testdata")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]int)
	for _, e := range entries {
		ext := strings.TrimPrefix(path.Ext(e.Name()), ".")
		if slices.Contains(exts, ext) {
			seen[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))]++
		}
	}
	var names []string
	for name, n := range seen {
		if n == len(exts) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
