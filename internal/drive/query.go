package drive

import (
	"strings"
)

// MimeTypePDF is the document class the sync job monitors.
const MimeTypePDF = "application/pdf"

// Query describes a Drive files.list search in structured form. Expression
// renders it as a Drive v3 q-expression.
type Query struct {
	Keywords   []string // OR-joined "name contains" clauses
	DateAfter  string   // YYYY-MM-DD, inclusive lower bound on modifiedTime
	DateBefore string   // YYYY-MM-DD, inclusive upper bound on modifiedTime
	MimeType   string   // exact mimeType match, empty for any
}

// escapeQueryValue escapes a value for embedding in a single-quoted Drive
// query literal.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}

// Expression builds the Drive q-expression. Trashed files are always
// excluded. An empty keyword list produces no name clause at all: an empty
// query means "no textual constraint", not "match the empty string".
func (q Query) Expression() string {
	conditions := []string{"trashed = false"}

	if q.MimeType != "" {
		conditions = append(conditions, "mimeType='"+escapeQueryValue(q.MimeType)+"'")
	}

	keywords := make([]string, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		keywords = append(keywords, "name contains '"+escapeQueryValue(kw)+"'")
	}
	if len(keywords) > 0 {
		conditions = append(conditions, "("+strings.Join(keywords, " or ")+")")
	}

	if q.DateAfter != "" {
		conditions = append(conditions, "modifiedTime >= '"+q.DateAfter+"T00:00:00Z'")
	}
	if q.DateBefore != "" {
		conditions = append(conditions, "modifiedTime <= '"+q.DateBefore+"T23:59:59Z'")
	}

	return strings.Join(conditions, " and ")
}
