package logsys

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Pattern verbs understood by the sinks:
//
//	%T  time as HH:MM:SS
//	%n  logger name
//	%l  level name
//	%L  single-letter level name
//	%v  message
//	%s  caller file basename
//	%#  caller line
//	%!  caller function
//	%^  start of the color span (console sinks only)
//	%$  end of the color span
//	%%  literal percent sign
type tokenKind int8

const (
	tokenLiteral tokenKind = iota
	tokenTime
	tokenName
	tokenLevel
	tokenShortLevel
	tokenMessage
	tokenFile
	tokenLine
	tokenFunction
	tokenColorStart
	tokenColorEnd
)

type token struct {
	kind tokenKind
	lit  string
}

// compilePattern parses a pattern string into a token list. Unknown verbs
// are rejected so misconfiguration surfaces at initialization, not per
// record.
func compilePattern(pattern string) ([]token, error) {
	var tokens []token
	lit := make([]byte, 0, len(pattern))

	flush := func() {
		if len(lit) > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, lit: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			lit = append(lit, pattern[i])
			continue
		}
		if i+1 >= len(pattern) {
			return nil, fmt.Errorf("pattern ends with a bare %%")
		}
		i++
		switch pattern[i] {
		case 'T':
			flush()
			tokens = append(tokens, token{kind: tokenTime})
		case 'n':
			flush()
			tokens = append(tokens, token{kind: tokenName})
		case 'l':
			flush()
			tokens = append(tokens, token{kind: tokenLevel})
		case 'L':
			flush()
			tokens = append(tokens, token{kind: tokenShortLevel})
		case 'v':
			flush()
			tokens = append(tokens, token{kind: tokenMessage})
		case 's':
			flush()
			tokens = append(tokens, token{kind: tokenFile})
		case '#':
			flush()
			tokens = append(tokens, token{kind: tokenLine})
		case '!':
			flush()
			tokens = append(tokens, token{kind: tokenFunction})
		case '^':
			flush()
			tokens = append(tokens, token{kind: tokenColorStart})
		case '$':
			flush()
			tokens = append(tokens, token{kind: tokenColorEnd})
		case '%':
			lit = append(lit, '%')
		default:
			return nil, fmt.Errorf("unknown pattern verb %%%c", pattern[i])
		}
	}
	flush()
	return tokens, nil
}

var bufferPool = buffer.NewPool()

// patternEncoder renders zapcore entries according to a compiled pattern.
// The embedded encoder supplies the structured-field surface zapcore
// requires; pattern sinks carry all record data in the pattern itself.
type patternEncoder struct {
	zapcore.Encoder
	tokens  []token
	colored bool
}

func newPatternEncoder(pattern string, colored bool) (*patternEncoder, error) {
	tokens, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &patternEncoder{
		Encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{}),
		tokens:  tokens,
		colored: colored,
	}, nil
}

func (e *patternEncoder) Clone() zapcore.Encoder {
	return &patternEncoder{
		Encoder: e.Encoder.Clone(),
		tokens:  e.tokens,
		colored: e.colored,
	}
}

func (e *patternEncoder) EncodeEntry(ent zapcore.Entry, _ []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()

	// Color spans are rendered into a scratch buffer first so the whole
	// span is wrapped in a single escape pair.
	var span *buffer.Buffer
	target := buf

	for _, tok := range e.tokens {
		switch tok.kind {
		case tokenLiteral:
			target.AppendString(tok.lit)
		case tokenTime:
			target.AppendString(ent.Time.Format("15:04:05"))
		case tokenName:
			target.AppendString(ent.LoggerName)
		case tokenLevel:
			target.AppendString(levelFromZap(ent.Level).String())
		case tokenShortLevel:
			target.AppendString(levelFromZap(ent.Level).shortString())
		case tokenMessage:
			target.AppendString(ent.Message)
		case tokenFile:
			if ent.Caller.Defined {
				target.AppendString(filepath.Base(ent.Caller.File))
			}
		case tokenLine:
			if ent.Caller.Defined {
				target.AppendString(strconv.Itoa(ent.Caller.Line))
			}
		case tokenFunction:
			if ent.Caller.Defined {
				target.AppendString(ent.Caller.Function)
			}
		case tokenColorStart:
			if e.colored && span == nil {
				span = bufferPool.Get()
				target = span
			}
		case tokenColorEnd:
			if span != nil {
				buf.AppendString(levelColor(levelFromZap(ent.Level)).Sprint(span.String()))
				span.Free()
				span = nil
				target = buf
			}
		}
	}
	if span != nil {
		// Unterminated span, flush it uncolored.
		buf.AppendString(span.String())
		span.Free()
	}
	buf.AppendString(zapcore.DefaultLineEnding)
	return buf, nil
}

// levelColor maps a level to its console color.
func levelColor(l Level) *color.Color {
	switch l {
	case LevelTrace:
		return color.New(color.FgWhite)
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelInfo:
		return color.New(color.FgGreen)
	case LevelWarn:
		return color.New(color.FgYellow, color.Bold)
	case LevelError:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite, color.BgRed, color.Bold)
	}
}
