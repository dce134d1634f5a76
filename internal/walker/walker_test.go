package walker_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/gitree/internal/ignore"
	"github.com/bethropolis/gitree/internal/testutil"
	"github.com/bethropolis/gitree/internal/walker"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T, root string, opts ...ignore.Option) *ignore.IgnoreMatcher {
	t.Helper()
	m, err := ignore.New(root, opts...)
	require.NoError(t, err)
	return m
}

func walkPaths(t *testing.T, root string, matcher *ignore.IgnoreMatcher, opts ...walker.Option) []string {
	t.Helper()
	tree, _, err := walker.Walk(root, matcher, opts...)
	require.NoError(t, err)
	return tree.Paths()
}

func TestWalk_SortOrder(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"b.txt":        "b",
		"A.txt":        "a",
		"c.txt":        "c",
		"zeta/":        "",
		"Alpha/":       "",
		"alpha2/x.txt": "x",
	})

	paths := walkPaths(t, root, nil)
	assert.Equal(t, []string{
		"Alpha/",
		"alpha2/",
		"alpha2/x.txt",
		"zeta/",
		"A.txt",
		"b.txt",
		"c.txt",
	}, paths)
}

func TestSortEntries_DirectoriesFirstCaseInsensitive(t *testing.T) {
	entries := []walker.Entry{
		{Name: "b.go"},
		{Name: "Docs", IsDir: true},
		{Name: "a.go"},
		{Name: "api", IsDir: true},
		{Name: "README.md"},
	}
	walker.SortEntries(entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"api", "Docs", "a.go", "b.go", "README.md"}, names)

	seenFile := false
	for _, e := range entries {
		if !e.IsDir {
			seenFile = true
		}
		assert.False(t, seenFile && e.IsDir, "directory %q listed after a file", e.Name)
	}
}

func TestWalk_HiddenPolicy(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".env":        "x",
		".config/a":   "a",
		"visible.txt": "v",
	})

	assert.Equal(t, []string{"visible.txt"}, walkPaths(t, root, nil))
	assert.Equal(t, []string{".config/", ".config/a", ".env", "visible.txt"},
		walkPaths(t, root, nil, walker.WithShowAll(true)))
}

func TestWalk_GitignorePrunesDirectories(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore":       "build/\n*.log\n",
		"build/out.bin":    "b",
		"src/build/gen.go": "g",
		"src/main.go":      "m",
		"src/debug.log":    "l",
		"src/.gitignore":   "!debug.log\n",
		"notes.log":        "n",
	})

	paths := walkPaths(t, root, newMatcher(t, root))
	assert.Equal(t, []string{"src/", "src/debug.log", "src/main.go"}, paths)

	disabled := walkPaths(t, root, ignore.CreateDisabledMatcher(root))
	assert.Contains(t, disabled, "build/")
	assert.Contains(t, disabled, "notes.log")
}

func TestWalk_ExtraIgnoresAnyDepth(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a.pyc":           "x",
		"a.py":            "x",
		"pkg/b.pyc":       "x",
		"pkg/deep/c.pyc":  "x",
		"pkg/deep/c.py":   "x",
		"PKG_UPPER.PYC":   "x",
		"__pycache__/z.c": "x",
	})

	paths := walkPaths(t, root, nil, walker.WithExtraIgnores([]string{"*.pyc", "__pycache__"}))
	assert.Equal(t, []string{"pkg/", "pkg/deep/", "pkg/deep/c.py", "a.py", "PKG_UPPER.PYC"}, paths)
}

func TestWalk_ExtraIgnoreMatchesRelativePath(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"docs/internal/a.md": "x",
		"docs/public/b.md":   "x",
	})

	paths := walkPaths(t, root, nil, walker.WithExtraIgnores([]string{"docs/internal"}))
	assert.Equal(t, []string{"docs/", "docs/public/", "docs/public/b.md"}, paths)
}

func TestWalk_MaxDepthBoundary(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"top.txt":       "x",
		"a/mid.txt":     "x",
		"a/b/deep.txt":  "x",
		"a/b/c/far.txt": "x",
	})

	testCases := []struct {
		depth int
		want  []string
	}{
		{0, nil},
		{1, []string{"a/", "top.txt"}},
		{2, []string{"a/", "a/b/", "a/mid.txt", "top.txt"}},
		{-1, []string{"a/", "a/b/", "a/b/c/", "a/b/c/far.txt", "a/b/deep.txt", "a/mid.txt", "top.txt"}},
	}

	for _, tc := range testCases {
		tree, _, err := walker.Walk(root, nil, walker.WithMaxDepth(tc.depth))
		require.NoError(t, err)
		assert.Equal(t, tc.want, tree.Paths(), "max depth %d", tc.depth)

		_ = tree.Visit(func(n *walker.Node, depth int, _ bool) error {
			assert.Equal(t, n.Depth, depth)
			if tc.depth >= 0 {
				assert.LessOrEqual(t, n.Depth, tc.depth)
				if n.IsDir && n.Depth >= tc.depth {
					assert.False(t, n.Expanded, "%s must not be expanded", n.RelPath)
				}
			}
			return nil
		})
	}
}

func TestWalk_MaxItemsAppliesAfterFiltering(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore": "a.txt\nb.txt\n",
		"a.txt":      "x",
		"b.txt":      "x",
		"c.txt":      "x",
		"d.txt":      "x",
		"e.txt":      "x",
		"f.txt":      "x",
	})

	tree, skipped, err := walker.Walk(root, newMatcher(t, root), walker.WithMaxItems(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"c.txt", "d.txt"}, tree.Paths())
	assert.Equal(t, 2, tree.Elided)

	reasons := map[string]walker.SkippedReason{}
	for _, s := range skipped {
		reasons[s.Path] = s.Reason
	}
	assert.Equal(t, walker.ReasonIgnoredRule, reasons["a.txt"])
	assert.Equal(t, walker.ReasonTruncated, reasons["f.txt"])
}

func TestWalk_NoFiles(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a.txt":     "x",
		"dir/b.txt": "x",
		"dir/sub/":  "",
	})

	assert.Equal(t, []string{"dir/", "dir/sub/"}, walkPaths(t, root, nil, walker.WithNoFiles(true)))
}

func TestWalk_WhitelistScenario(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"file1.txt":        "1",
		"file2.txt":        "2",
		"folder/file3.txt": "3",
		"folder/file4.txt": "4",
		"other/file5.txt":  "5",
	})

	wl := walker.NewWhitelist(
		testutil.Abs(root, "file1.txt"),
		testutil.Abs(root, "folder/file3.txt"),
	)

	paths := walkPaths(t, root, nil, walker.WithWhitelist(wl))
	assert.Equal(t, []string{"folder/", "folder/file3.txt", "file1.txt"}, paths)
}

func TestWalk_WhitelistWithNoFiles(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"file1.txt":        "1",
		"folder/file3.txt": "3",
		"folder/sub/x.txt": "x",
		"other/file5.txt":  "5",
	})

	wl := walker.NewWhitelist(
		testutil.Abs(root, "file1.txt"),
		testutil.Abs(root, "folder/file3.txt"),
	)

	paths := walkPaths(t, root, nil, walker.WithWhitelist(wl), walker.WithNoFiles(true))
	assert.Equal(t, []string{"folder/"}, paths)
}

func TestWalk_RootAnchoredGitignore(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore":     "/dist\n",
		"dist/a.txt":     "a",
		"pkg/dist/b.txt": "b",
	})

	paths := walkPaths(t, root, newMatcher(t, root))
	assert.Equal(t, []string{"pkg/", "pkg/dist/", "pkg/dist/b.txt"}, paths)
}

func TestWalk_InMemoryFilesystem(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, ".gitignore", []byte("*.log\n"), 0o644))
	require.NoError(t, util.WriteFile(fs, "src/main.go", []byte("m"), 0o644))
	require.NoError(t, util.WriteFile(fs, "src/debug.log", []byte("l"), 0o644))
	require.NoError(t, util.WriteFile(fs, "README.md", []byte("r"), 0o644))

	root := t.TempDir()
	matcher := newMatcher(t, root, ignore.WithFilesystem(fs))

	paths := walkPaths(t, root, matcher, walker.WithFilesystem(fs))
	assert.Equal(t, []string{"src/", "src/main.go", "README.md"}, paths)
}

func TestWalk_WhitelistProjectionLaw(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore":      "hidden/\n",
		"a/b/c/keep.txt":  "k",
		"a/b/drop.txt":    "d",
		"x/y/drop.txt":    "d",
		"hidden/keep.txt": "k",
		"empty/":          "",
	})

	wl := walker.NewWhitelist(
		testutil.Abs(root, "a/b/c/keep.txt"),
		testutil.Abs(root, "hidden/keep.txt"),
	)

	tree, _, err := walker.Walk(root, newMatcher(t, root), walker.WithWhitelist(wl))
	require.NoError(t, err)

	assert.Equal(t, []string{"a/", "a/b/", "a/b/c/", "a/b/c/keep.txt"}, tree.Paths())

	_ = tree.Visit(func(n *walker.Node, _ int, _ bool) error {
		if n.IsDir {
			hasMember := false
			_ = n.Visit(func(c *walker.Node, _ int, _ bool) error {
				if !c.IsDir && wl.Contains(c.Path) {
					hasMember = true
				}
				return nil
			})
			assert.True(t, hasMember, "%s shown without a whitelisted descendant", n.RelPath)
		}
		return nil
	})
}

func TestWalk_WhitelistKeepsDirectoryAtDepthCutoff(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a/b/keep.txt": "k",
		"c/drop.txt":   "d",
	})
	wl := walker.NewWhitelist(testutil.Abs(root, "a/b/keep.txt"))

	paths := walkPaths(t, root, nil, walker.WithWhitelist(wl), walker.WithMaxDepth(1))
	assert.Equal(t, []string{"a/"}, paths)
}

func TestWalk_GitignoreDepthZone(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore":         "*.tmp\n",
		"one/.gitignore":     "*.one\n",
		"one/two/.gitignore": "*.two\n",
		"one/two/a.tmp":      "x",
		"one/two/a.one":      "x",
		"one/two/a.two":      "x",
	})

	paths := walkPaths(t, root, newMatcher(t, root, ignore.WithDepth(0)))
	assert.Equal(t, []string{"one/", "one/two/", "one/two/a.one", "one/two/a.two"}, paths)

	// one/*.one only covers direct children of one/
	paths = walkPaths(t, root, newMatcher(t, root, ignore.WithDepth(2)))
	assert.Equal(t, []string{"one/", "one/two/", "one/two/a.one"}, paths)
}

func TestWalk_RootErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	_, _, err := walker.Walk(missing, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, walker.ErrRootNotFound))

	root := testutil.TempTree(t, map[string]string{"file.txt": "x"})
	_, _, err = walker.Walk(testutil.Abs(root, "file.txt"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, walker.ErrNotDirectory))
}

func TestWalk_PermissionDeniedIsEmpty(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := testutil.TempTree(t, map[string]string{
		"locked/secret.txt": "s",
		"open/ok.txt":       "o",
	})
	locked := testutil.Abs(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	tree, skipped, err := walker.Walk(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"locked/", "open/", "open/ok.txt"}, tree.Paths())

	found := false
	for _, s := range skipped {
		if s.Path == "locked" && s.Reason == walker.ReasonSkippedPermError {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWalk_SymlinkedDirectoryNotExpanded(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"real/a.txt": "a",
	})
	if err := os.Symlink(testutil.Abs(root, "real"), testutil.Abs(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	tree, _, err := walker.Walk(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"link/", "real/", "real/a.txt"}, tree.Paths())
}

func TestWalk_Idempotent(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore":  "*.log\n",
		"a/b.txt":     "x",
		"a/c.log":     "x",
		"B/readme.md": "x",
		"z.txt":       "x",
	})

	first := walkPaths(t, root, newMatcher(t, root))
	second := walkPaths(t, root, newMatcher(t, root))
	assert.Equal(t, first, second)
}

func TestNodeHelpers(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a/one.txt": "x",
		"a/two.txt": "x",
		"b.txt":     "x",
	})

	tree, _, err := walker.Walk(root, nil)
	require.NoError(t, err)

	dirs, files := tree.Counts()
	assert.Equal(t, 1, dirs)
	assert.Equal(t, 3, files)

	var rels []string
	for _, f := range tree.Files() {
		rels = append(rels, f.RelPath)
		assert.True(t, strings.HasPrefix(f.Path, root))
	}
	assert.Equal(t, []string{"a/one.txt", "a/two.txt", "b.txt"}, rels)

	var lasts []string
	_ = tree.Visit(func(n *walker.Node, _ int, isLast bool) error {
		if isLast {
			lasts = append(lasts, n.RelPath)
		}
		return nil
	})
	assert.Equal(t, []string{"a/two.txt", "b.txt"}, lasts)

	stop := errors.New("stop")
	count := 0
	err = tree.Visit(func(*walker.Node, int, bool) error {
		count++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, count)
}

func TestLister_ListSingleDirectory(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		".gitignore": "*.o\n",
		"x.o":        "x",
		"x.c":        "x",
		"sub/y.c":    "y",
	})

	matcher := newMatcher(t, root)
	lister := walker.NewLister(root, matcher)
	entries, elided := lister.List("", matcher.RootRules())
	require.Len(t, entries, 2)
	assert.Equal(t, 0, elided)
	assert.Equal(t, "sub", entries[0].Name)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, filepath.Join(root, "sub"), entries[0].Path)
	assert.Equal(t, 1, entries[0].Depth)
	assert.Equal(t, "x.c", entries[1].RelPath)

	nested, _ := lister.List("sub", matcher.RootRules())
	require.Len(t, nested, 1)
	assert.Equal(t, "sub/y.c", nested[0].RelPath)
	assert.Equal(t, 2, nested[0].Depth)

	assert.NotEmpty(t, lister.Skipped())
}
