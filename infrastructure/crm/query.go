package crm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidIdentifier is returned when a value bound as an identifier is not a valid
// field, object or category name.
var ErrInvalidIdentifier = errors.New("invalid SOQL identifier")

var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)*$`)

// Query is a SOQL statement template with bind variables.
//
// :name placeholders are replaced with quoted, escaped literals and {name}
// placeholders with identifiers that must match identifierPattern. Input is never
// spliced into the statement any other way.
type Query struct {
	template string
	literals map[string]string
	idents   map[string]string
	err      error
}

// NewQuery creates a query from a template
func NewQuery(template string) *Query {
	return &Query{
		template: template,
		literals: make(map[string]string),
		idents:   make(map[string]string),
	}
}

// Bind binds a string literal
func (q *Query) Bind(name, value string) *Query {
	q.literals[name] = QuoteLiteral(value)
	return q
}

// BindInt binds an integer literal
func (q *Query) BindInt(name string, value int) *Query {
	q.literals[name] = strconv.Itoa(value)
	return q
}

// BindList binds a parenthesized list of string literals for IN / NOT IN
func (q *Query) BindList(name string, values []string) *Query {
	if len(values) == 0 {
		q.setErr(fmt.Errorf("bind %q: empty list", name))
		return q
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = QuoteLiteral(v)
	}
	q.literals[name] = "(" + strings.Join(quoted, ", ") + ")"
	return q
}

// Ident binds an identifier such as a field path, object or category name
func (q *Query) Ident(name, ident string) *Query {
	if !identifierPattern.MatchString(ident) {
		q.setErr(fmt.Errorf("bind %q: %w: %q", name, ErrInvalidIdentifier, ident))
		return q
	}
	q.idents[name] = ident
	return q
}

// Build renders the statement. Every placeholder in the template must be bound.
func (q *Query) Build() (string, error) {
	if q.err != nil {
		return "", q.err
	}

	var out strings.Builder
	t := q.template
	for i := 0; i < len(t); {
		switch c := t[i]; {
		case c == ':' && i+1 < len(t) && isNameStart(t[i+1]):
			name := scanName(t[i+1:])
			value, ok := q.literals[name]
			if !ok {
				return "", fmt.Errorf("unbound variable :%s", name)
			}
			out.WriteString(value)
			i += 1 + len(name)
		case c == '{':
			end := strings.IndexByte(t[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated identifier placeholder at %d", i)
			}
			name := t[i+1 : i+end]
			value, ok := q.idents[name]
			if !ok {
				return "", fmt.Errorf("unbound identifier {%s}", name)
			}
			out.WriteString(value)
			i += end + 1
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

func (q *Query) setErr(err error) {
	if q.err == nil {
		q.err = err
	}
}

// QuoteLiteral renders s as a single-quoted SOQL string literal
func QuoteLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func scanName(s string) string {
	n := 0
	for n < len(s) && (isNameStart(s[n]) || (s[n] >= '0' && s[n] <= '9')) {
		n++
	}
	return s[:n]
}
