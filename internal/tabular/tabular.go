// Package tabular parses delimited text with a header row into records keyed
// by column name.
//
// The dialect is broader than encoding/csv: a configurable escape character
// makes the following quote, delimiter, line break or escape literal both
// inside and outside quoted fields, doubled quotes are also accepted, and
// values can be trimmed.
package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Options controls the dialect.
type Options struct {
	Comma          rune
	Quote          rune
	Escape         rune // 0 disables escape handling
	Trim           bool
	SkipEmptyLines bool
}

// DefaultOptions is comma separated, double quoted, backslash escaped, trimmed,
// with blank lines skipped.
func DefaultOptions() Options {
	return Options{Comma: ',', Quote: '"', Escape: '\\', Trim: true, SkipEmptyLines: true}
}

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("tabular: missing header row")

// ParseError reports a malformed record.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("tabular: line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ErrUnterminatedQuote is wrapped by a ParseError when input ends inside a quoted field.
var ErrUnterminatedQuote = errors.New("unterminated quoted field")

// Parse reads the header row and every following record. Missing trailing
// columns become empty strings; extra columns are dropped. A later duplicate
// header name overwrites an earlier one.
func Parse(r io.Reader, opts Options) ([]map[string]string, error) {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}

	p := &parser{r: bufio.NewReader(r), opts: opts}

	var header []string
	for header == nil {
		fields, err := p.record()
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, err
		}
		if isBlank(fields) {
			continue
		}
		header = fields
	}

	var out []map[string]string
	for {
		fields, err := p.record()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if opts.SkipEmptyLines && isBlank(fields) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		out = append(out, row)
	}
}

func isBlank(fields []string) bool {
	return len(fields) == 0 || (len(fields) == 1 && fields[0] == "")
}

type parser struct {
	r    *bufio.Reader
	opts Options
	line int
}

// record reads one logical record, which may span lines inside quotes.
// It returns io.EOF only when no characters remain.
func (p *parser) record() ([]string, error) {
	p.line++
	start := p.line

	var (
		fields []string
		field  strings.Builder
		quoted bool
		read   bool
	)

	finish := func() {
		v := field.String()
		if p.opts.Trim {
			v = strings.TrimSpace(v)
		}
		fields = append(fields, v)
		field.Reset()
	}

	for {
		c, _, err := p.r.ReadRune()
		if err == io.EOF {
			if !read {
				return nil, io.EOF
			}
			if quoted {
				return nil, &ParseError{Line: start, Err: ErrUnterminatedQuote}
			}
			finish()
			return fields, nil
		}
		if err != nil {
			return nil, err
		}
		read = true

		if quoted {
			switch {
			case p.opts.Escape != 0 && c == p.opts.Escape && p.opts.Escape != p.opts.Quote:
				next, _, err := p.r.ReadRune()
				if err == io.EOF {
					return nil, &ParseError{Line: start, Err: ErrUnterminatedQuote}
				}
				if err != nil {
					return nil, err
				}
				if p.isMeta(next) {
					if next == '\n' {
						p.line++
					}
					field.WriteRune(next)
				} else {
					field.WriteRune(c)
					if err := p.r.UnreadRune(); err != nil {
						return nil, err
					}
				}
			case c == p.opts.Quote:
				next, _, err := p.r.ReadRune()
				if err == nil && next == p.opts.Quote {
					field.WriteRune(p.opts.Quote)
					continue
				}
				if err == nil {
					if err := p.r.UnreadRune(); err != nil {
						return nil, err
					}
				} else if err != io.EOF {
					return nil, err
				}
				quoted = false
			default:
				if c == '\n' {
					p.line++
				}
				field.WriteRune(c)
			}
			continue
		}

		if p.opts.Escape != 0 && c == p.opts.Escape && p.opts.Escape != p.opts.Quote {
			next, _, err := p.r.ReadRune()
			if err != nil && err != io.EOF {
				return nil, err
			}
			switch {
			case err == io.EOF:
				field.WriteRune(c)
			case p.isMeta(next):
				if next == '\n' {
					p.line++
				}
				field.WriteRune(next)
			default:
				field.WriteRune(c)
				if err := p.r.UnreadRune(); err != nil {
					return nil, err
				}
			}
			continue
		}

		switch c {
		case p.opts.Quote:
			if strings.TrimSpace(field.String()) == "" {
				field.Reset()
				quoted = true
			} else {
				field.WriteRune(c)
			}
		case p.opts.Comma:
			finish()
		case '\r':
			next, _, err := p.r.ReadRune()
			if err == nil && next != '\n' {
				if err := p.r.UnreadRune(); err != nil {
					return nil, err
				}
			}
			finish()
			return fields, nil
		case '\n':
			finish()
			return fields, nil
		default:
			field.WriteRune(c)
		}
	}
}

// isMeta reports whether an escape before c yields c literally. Any other
// rune keeps the escape character.
func (p *parser) isMeta(c rune) bool {
	return c == p.opts.Quote || c == p.opts.Escape || c == p.opts.Comma || c == '\r' || c == '\n'
}
