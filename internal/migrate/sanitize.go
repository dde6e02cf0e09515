package migrate

import (
	"regexp"
	"strings"
)

// The migration files are authored for hosted Postgres. These statement
// classes either have no SQLite equivalent or would abort the whole
// script, so they are stripped before execution and reported as skipped.
var skipPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`(?s)SET\s+[^;]+;`), "session SET statement"},
	{regexp.MustCompile(`(?s)COMMENT ON COLUMN [^;]+;`), "column comment"},
	{regexp.MustCompile(`(?s)CREATE EXTENSION IF NOT EXISTS [^;]+;`), "extension creation"},
	{regexp.MustCompile(`(?s)TYPE [^;]+;`), "standalone TYPE statement"},
}

var lineComment = regexp.MustCompile(`(?m)--.*$`)

type skippedStatement struct {
	statement string
	reason    string
}

// sanitize strips line comments and dialect-incompatible statements from
// a migration script, returning the cleaned script and what was removed.
func sanitize(script string) (string, []skippedStatement) {
	cleaned := lineComment.ReplaceAllString(script, "")

	var skipped []skippedStatement
	for _, p := range skipPatterns {
		for _, match := range p.re.FindAllString(cleaned, -1) {
			skipped = append(skipped, skippedStatement{
				statement: strings.TrimSpace(match),
				reason:    p.reason,
			})
		}
		cleaned = p.re.ReplaceAllString(cleaned, "")
	}
	return cleaned, skipped
}
