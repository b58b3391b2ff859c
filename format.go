package logsys

import "fmt"

// FormatError reports a malformed format string or an argument index that
// has no matching argument. It is delivered by panic, mirroring the hard
// failure of the formatting backend.
type FormatError struct {
	Template string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %q: %s", e.Template, e.Reason)
}

// Format interpolates args into template using brace placeholders:
// {} consumes the next argument, {N} selects argument N, and {{ / }}
// emit literal braces. Each argument is rendered through the formatter
// registry before the default rendering rules apply.
//
// Format panics with *FormatError on a malformed template or an
// out-of-range argument index.
func Format(template string, args ...any) string {
	s := getState()
	defer putState(s)
	appendFormat(s, template, args)
	return s.buf.String()
}

// AppendFormat interpolates like Format and appends the result to dst.
func AppendFormat(dst []byte, template string, args ...any) []byte {
	s := getState()
	defer putState(s)
	appendFormat(s, template, args)
	return append(dst, s.buf.Bytes()...)
}

func appendFormat(s *State, template string, args []any) {
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				s.buf.AppendByte('{')
				i++
				continue
			}
			idx, rest := parsePlaceholder(template, i+1, &next)
			if idx < 0 || idx >= len(args) {
				panic(&FormatError{Template: template, Reason: fmt.Sprintf("argument index %d out of range", idx)})
			}
			s.Value(args[idx])
			i = rest
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				s.buf.AppendByte('}')
				i++
				continue
			}
			panic(&FormatError{Template: template, Reason: "unmatched '}'"})
		default:
			s.buf.AppendByte(c)
		}
	}
}

// parsePlaceholder reads a placeholder body starting at template[from]
// (just past the '{'). It returns the selected argument index and the
// position of the closing brace. Only empty and numeric specifiers are
// accepted.
func parsePlaceholder(template string, from int, next *int) (int, int) {
	i := from
	for i < len(template) && template[i] != '}' {
		i++
	}
	if i >= len(template) {
		panic(&FormatError{Template: template, Reason: "unterminated '{'"})
	}
	body := template[from:i]
	if body == "" {
		idx := *next
		*next = *next + 1
		return idx, i
	}
	idx := 0
	for j := 0; j < len(body); j++ {
		if body[j] < '0' || body[j] > '9' {
			panic(&FormatError{Template: template, Reason: fmt.Sprintf("invalid format specifier %q", body)})
		}
		idx = idx*10 + int(body[j]-'0')
	}
	return idx, i
}
