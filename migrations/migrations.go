// Package migrations embeds the Spanner schema so binaries and tests can
// apply it without a checkout of the repository.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Migration is one schema file split into DDL statements.
type Migration struct {
	Name       string
	Statements []string
}

// All returns the embedded migrations in file name order.
func All() ([]Migration, error) {
	return Load(files)
}

// Load reads every *.sql file at the root of fsys.
func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: name, Statements: SplitStatements(string(content))})
	}
	return out, nil
}

// SplitStatements strips "--" comment lines and splits content on semicolons.
func SplitStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

// ObjectName returns the table or index a CREATE statement defines, or "" for
// any other statement.
func ObjectName(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) < 3 || !strings.EqualFold(fields[0], "CREATE") {
		return ""
	}
	i := 1
	if strings.EqualFold(fields[i], "UNIQUE") || strings.EqualFold(fields[i], "NULL_FILTERED") {
		i++
	}
	if i+1 >= len(fields) {
		return ""
	}
	if !strings.EqualFold(fields[i], "TABLE") && !strings.EqualFold(fields[i], "INDEX") {
		return ""
	}
	name := fields[i+1]
	if idx := strings.IndexByte(name, '('); idx >= 0 {
		name = name[:idx]
	}
	return strings.ToLower(name)
}
