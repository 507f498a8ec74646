package drive

import (
	"fmt"
	"strings"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// queryExpr renders a core.Query as the store's q-expression syntax.
// Trashed files are always excluded.
func queryExpr(q core.Query) string {
	clauses := []string{"trashed = false"}
	if q.MIMEType != "" {
		clauses = append(clauses, fmt.Sprintf("mimeType = '%s'", escapeQueryTerm(q.MIMEType)))
	}
	if q.Name != "" {
		clauses = append(clauses, fmt.Sprintf("name = '%s'", escapeQueryTerm(q.Name)))
	}
	if q.ParentID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", escapeQueryTerm(q.ParentID)))
	}
	return strings.Join(clauses, " and ")
}

// escapeQueryTerm escapes the characters the q-expression grammar treats
// specially inside single-quoted terms.
func escapeQueryTerm(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
