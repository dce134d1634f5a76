package ignore

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// readGitignore returns the raw lines of relDir/.gitignore. Missing or
// unreadable files yield no lines.
func (m *IgnoreMatcher) readGitignore(relDir string) []string {
	name := path.Join(relDir, GitignoreFile)

	data, err := util.ReadFile(m.fs, filepath.FromSlash(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		m.logger.Warn("ignore: Could not read %q, treating it as empty: %v", name, err)
		return nil
	}

	return strings.Split(decode(data), "\n")
}

// decode converts .gitignore content to UTF-8. A BOM selects UTF-8 or
// UTF-16; invalid byte sequences are dropped.
func decode(data []byte) string {
	t := transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}
