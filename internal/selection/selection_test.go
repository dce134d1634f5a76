package selection

import (
	"errors"
	"testing"

	"github.com/bethropolis/gitree/internal/ignore"
	"github.com/bethropolis/gitree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPicker struct {
	title   string
	offered []string
	choose  func(labels []string) []string
	err     error
}

func (s *stubPicker) Pick(title string, labels []string) ([]string, error) {
	s.title = title
	s.offered = labels
	if s.err != nil {
		return nil, s.err
	}
	return s.choose(labels), nil
}

func fixture(t *testing.T) string {
	t.Helper()
	return testutil.TempTree(t, map[string]string{
		".gitignore":       "*.log\n",
		"file1.txt":        "1",
		"file2.txt":        "2",
		"folder/file3.txt": "3",
		"folder/file4.txt": "4",
		"folder/notes.md":  "n",
		"debug.log":        "l",
	})
}

func relPaths(t *testing.T, root string, opts Options) []string {
	t.Helper()
	m, err := ignore.New(root)
	require.NoError(t, err)
	entries, err := Collect(root, m, opts)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	return out
}

func TestCollect(t *testing.T) {
	root := fixture(t)

	testCases := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "all files",
			want: []string{"folder/file3.txt", "folder/file4.txt", "folder/notes.md", "file1.txt", "file2.txt"},
		},
		{
			name: "include only",
			opts: Options{Include: []string{"*.md"}},
			want: []string{"folder/notes.md"},
		},
		{
			name: "exclude only",
			opts: Options{Exclude: []string{"file2.txt", "*.md"}},
			want: []string{"folder/file3.txt", "folder/file4.txt", "file1.txt"},
		},
		{
			name: "exclude wins over include",
			opts: Options{Include: []string{"*.txt"}, Exclude: []string{"file4.txt"}},
			want: []string{"folder/file3.txt", "file1.txt", "file2.txt"},
		},
		{
			name: "extra ignores",
			opts: Options{ExtraIgnores: []string{"folder"}},
			want: []string{"file1.txt", "file2.txt"},
		},
		{
			name: "include directory",
			opts: Options{Include: []string{"folder/"}},
			want: []string{"folder/file3.txt", "folder/file4.txt", "folder/notes.md"},
		},
		{
			name: "exclude directory",
			opts: Options{Exclude: []string{"folder/"}},
			want: []string{"file1.txt", "file2.txt"},
		},
		{
			name: "exclude bare directory name",
			opts: Options{Exclude: []string{"folder"}},
			want: []string{"file1.txt", "file2.txt"},
		},
		{
			name: "nothing matches",
			opts: Options{Include: []string{"*.go"}},
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, relPaths(t, root, tc.opts))
		})
	}
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := Collect(t.TempDir()+"/missing", nil, Options{})
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	root := fixture(t)
	m, err := ignore.New(root)
	require.NoError(t, err)

	picker := &stubPicker{choose: func(labels []string) []string {
		return []string{"file1.txt", "folder/file3.txt"}
	}}

	wl, err := Select(root, m, Options{}, picker)
	require.NoError(t, err)
	assert.Equal(t, "Select files to include:", picker.title)
	assert.Len(t, picker.offered, 5)
	assert.Equal(t, []string{testutil.Abs(root, "file1.txt"), testutil.Abs(root, "folder/file3.txt")}, wl.Paths())
	assert.True(t, wl.HasDescendant(testutil.Abs(root, "folder")))
}

func TestSelectCancelledAndEmpty(t *testing.T) {
	root := fixture(t)

	cancel := &stubPicker{choose: func([]string) []string { return nil }}
	wl, err := Select(root, nil, Options{}, cancel)
	require.NoError(t, err)
	assert.Equal(t, 0, wl.Len())

	never := &stubPicker{choose: func([]string) []string {
		t.Fatal("picker must not run without candidates")
		return nil
	}}
	wl, err = Select(root, nil, Options{Include: []string{"*.go"}}, never)
	require.NoError(t, err)
	assert.Equal(t, 0, wl.Len())

	failing := &stubPicker{err: errors.New("no tty")}
	_, err = Select(root, nil, Options{}, failing)
	assert.Error(t, err)
}

func TestFilterNil(t *testing.T) {
	var f *Filter
	assert.True(t, f.Keep("anything"))
	assert.True(t, NewFilter("/", nil, []string{"  "}).Keep("x"))
}

func TestFilterDirectoryPatterns(t *testing.T) {
	include := NewFilter("/repo", []string{"src/"}, nil)
	assert.True(t, include.Keep("src/a.py"))
	assert.True(t, include.Keep("src/pkg/b.py"))
	assert.False(t, include.Keep("docs/src.md"))

	exclude := NewFilter("/repo", nil, []string{"build/"})
	assert.False(t, exclude.Keep("build/x.o"))
	assert.False(t, exclude.Keep("lib/build/deep/y.o"))
	assert.True(t, exclude.Keep("builder.go"))
}
