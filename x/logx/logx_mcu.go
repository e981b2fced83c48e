//go:build rp2040 || rp2350

package logx

import "io"

var minLevel = levelInfo

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

// SetOutput is a no-op on MCU builds; println goes to the default console.
func SetOutput(io.Writer, bool) {}

func SetLevel(name string) error {
	switch name {
	case "debug":
		minLevel = levelDebug
	case "info":
		minLevel = levelInfo
	case "warn":
		minLevel = levelWarn
	case "error":
		minLevel = levelError
	}
	return nil
}

type Logger struct {
	component string
}

func New(component string) Logger { return Logger{component: component} }

func (l Logger) Debug(msg string, kv ...any) { l.emit(levelDebug, "Debug:", msg, nil, kv) }
func (l Logger) Info(msg string, kv ...any)  { l.emit(levelInfo, "Info:", msg, nil, kv) }
func (l Logger) Warn(msg string, kv ...any)  { l.emit(levelWarn, "Warn:", msg, nil, kv) }

func (l Logger) Error(msg string, err error, kv ...any) {
	l.emit(levelError, "Error:", msg, err, kv)
}

func (l Logger) emit(lvl int, tag, msg string, err error, kv []any) {
	if lvl < minLevel {
		return
	}
	print(tag, " ", l.component, ": ", msg)
	if err != nil {
		print(" error=", err.Error())
	}
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		print(" ", k, "=")
		printValue(kv[i+1])
	}
	println()
}

func printValue(v any) {
	switch x := v.(type) {
	case string:
		print(x)
	case int:
		print(x)
	case int32:
		print(x)
	case int64:
		print(x)
	case uint8:
		print(x)
	case uint32:
		print(x)
	case uint64:
		print(x)
	case bool:
		print(x)
	case interface{ String() string }:
		print(x.String())
	case error:
		print(x.Error())
	default:
		print("?")
	}
}
