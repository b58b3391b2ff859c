package logsys

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap/buffer"
)

// State is the output position handed to registered formatters. Formatters
// write their rendering of a value directly into it and may delegate
// sub-fields back to the registry with Value.
type State struct {
	buf *buffer.Buffer
}

var statePool = sync.Pool{
	New: func() any { return &State{} },
}

func getState() *State {
	s := statePool.Get().(*State)
	s.buf = bufferPool.Get()
	return s
}

func putState(s *State) {
	s.buf.Free()
	s.buf = nil
	statePool.Put(s)
}

// Write implements io.Writer so formatters can use the fmt machinery.
func (s *State) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// WriteByte appends a single byte.
func (s *State) WriteByte(b byte) error {
	s.buf.AppendByte(b)
	return nil
}

// WriteString appends a string.
func (s *State) WriteString(str string) {
	s.buf.AppendString(str)
}

// WriteRune appends a rune in UTF-8.
func (s *State) WriteRune(r rune) {
	s.buf.AppendString(string(r))
}

// Value renders v through the formatter registry, falling back to the
// default rendering rules. This is the delegation point that lets a
// formatter compose sub-fields.
func (s *State) Value(v any) {
	if v != nil {
		if fn := lookupFormatter(reflect.TypeOf(v)); fn != nil {
			fn(s, v)
			return
		}
	}
	s.appendDefault(v)
}

// appendDefault renders a value no formatter claims.
func (s *State) appendDefault(v any) {
	switch val := v.(type) {
	case nil:
		s.buf.AppendString("<nil>")
	case string:
		s.buf.AppendString(val)
	case []byte:
		s.buf.Write(val)
	case bool:
		s.buf.AppendBool(val)
	case int:
		s.buf.AppendInt(int64(val))
	case int8:
		s.buf.AppendInt(int64(val))
	case int16:
		s.buf.AppendInt(int64(val))
	case int32:
		s.buf.AppendInt(int64(val))
	case int64:
		s.buf.AppendInt(val)
	case uint:
		s.buf.AppendUint(uint64(val))
	case uint8:
		s.buf.AppendUint(uint64(val))
	case uint16:
		s.buf.AppendUint(uint64(val))
	case uint32:
		s.buf.AppendUint(uint64(val))
	case uint64:
		s.buf.AppendUint(val)
	case float32:
		s.buf.AppendFloat(float64(val), 32)
	case float64:
		s.buf.AppendFloat(val, 64)
	case error:
		s.buf.AppendString(val.Error())
	case fmt.Stringer:
		s.buf.AppendString(val.String())
	default:
		fmt.Fprintf(s, "%+v", val)
	}
}

// FormatFunc renders a value of an unspecified concrete type into a State.
type FormatFunc func(*State, any)

var (
	formattersMu sync.RWMutex
	formatters   = map[reflect.Type]FormatFunc{}
)

// RegisterFormatter registers a writer-style formatter for type T. The
// function receives the output State and the value and emits characters
// and sub-fields directly. Registering a second formatter for the same
// type replaces the first.
func RegisterFormatter[T any](fn func(*State, T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	formattersMu.Lock()
	formatters[t] = func(s *State, v any) { fn(s, v.(T)) }
	formattersMu.Unlock()
}

// RegisterCastFormatter registers a formatter for type T that renders the
// value conv produces instead, through the registry's usual dispatch.
func RegisterCastFormatter[T any, U any](conv func(T) U) {
	RegisterFormatter(func(s *State, v T) {
		s.Value(conv(v))
	})
}

// UnregisterFormatter removes the formatter for type T.
func UnregisterFormatter[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	formattersMu.Lock()
	delete(formatters, t)
	formattersMu.Unlock()
}

func lookupFormatter(t reflect.Type) FormatFunc {
	formattersMu.RLock()
	fn := formatters[t]
	formattersMu.RUnlock()
	return fn
}
