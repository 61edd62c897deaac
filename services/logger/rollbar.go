package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/hagwon/core"
)

// Fields are extra key/values attached to a log entry.
type Fields = map[string]interface{}

// RollbarLogger prints to a standard logger and forwards every entry to Rollbar (when enabled).
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil) // interface compliance check

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.TestMode)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected args: error, Fields, or anything printable (merged into the custom data as "args").
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var (
		errSet bool
		extras []interface{}
	)
	custom := make(map[string]interface{})
	out := make([]interface{}, 0, 3)
	out = append(out, msg)

	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			if !errSet { // rollbar reports a single error per item
				out = append(out, a)
				errSet = true
			} else {
				extras = append(extras, a.Error())
			}
		case Fields:
			for k, v := range a {
				custom[k] = v
			}
		default:
			extras = append(extras, a)
		}
	}
	if len(extras) > 0 {
		custom["args"] = extras
	}
	if len(custom) > 0 {
		out = append(out, custom)
	}
	return out
}

func (l RollbarLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for _, arg := range args {
		if f, ok := arg.(Fields); ok {
			keys := make([]string, 0, len(f))
			for k := range f {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, " %s=%v", k, f[k])
			}
			continue
		}
		fmt.Fprintf(&b, " | %+v", arg)
	}
	l.std.Println(b.String())
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print("DEBUG", msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print("INFO", msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print("WARN", msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print("ERROR", msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print("FATAL", msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
