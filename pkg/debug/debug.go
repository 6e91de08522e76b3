// Package debug carries the zerolog hooks shared by the CLI's console
// logger.
package debug

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// CustomTimeHook stamps events with a millisecond-precision time field.
type CustomTimeHook struct {
	WithColor bool
	Format    string
}

func (t CustomTimeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	format := t.Format
	if format == "" {
		format = "2006-01-02T15:04:05.0000Z"
	}
	e.Str("time", time.Now().Format(format))
}

// CustomCallerHook stamps events with a pkg:file:line caller field.
type CustomCallerHook struct {
	WithColor bool
}

func (c CustomCallerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	pc, file, line, ok := runtime.Caller(callerSkipFrameCount(e) + 3)
	if !ok {
		return
	}

	funcd := runtime.FuncForPC(pc)
	pkg, _ := splitFuncName(funcd.Name())

	e.Str("caller", FormatCaller(pkg, file, line, c.WithColor))
}

// callerSkipFrameCount reads the event's unexported skipFrame field so the
// hook honors CallerSkipFrame the same way zerolog's own caller support does.
func callerSkipFrameCount(e *zerolog.Event) int {
	v := reflect.ValueOf(e).Elem()
	field := v.FieldByName("skipFrame")
	if field.IsValid() && field.CanAddr() {
		return int(field.Int())
	}
	return 0
}

// splitFuncName splits a runtime function name into its package path and
// bare function name, keeping receiver types with the function.
func splitFuncName(name string) (pkg, function string) {
	lastSlash := strings.LastIndexByte(name, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}
	firstDot := strings.IndexByte(name[lastSlash:], '.') + lastSlash

	pkg = name[:firstDot]
	function = name[firstDot+1:]

	if strings.Contains(pkg, ".(") {
		split := strings.Split(pkg, ".(")
		pkg = split[0]
		function = "(" + split[1] + "." + function
	}

	return pkg, function
}

// FormatCaller renders a caller as pkg:file:line, optionally colorized for
// console output.
func FormatCaller(pkg, path string, line int, colorize bool) string {
	file := fileNameOfPath(path)
	if colorize {
		file = color.New(color.Bold).Sprint(file)
		num := color.New(color.FgHiRed, color.Bold).Sprintf("%d", line)
		sep := color.New(color.Faint).Sprint(":")
		return fmt.Sprintf("%s%s%s%s%s", pkg, sep, file, sep, num)
	}
	return fmt.Sprintf("%s:%s:%d", pkg, file, line)
}

func fileNameOfPath(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
