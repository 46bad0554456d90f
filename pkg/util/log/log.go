// Package log is a small logging shim. It keeps the context-tagged
// call signatures of a full logging library while writing through the
// standard logger to stderr, so workload output on stdout stays clean.
package log

import (
	"context"
	"log"
	"os"
	"strconv"
)

// verbosity gates V(). Set QLOAD_VERBOSITY to enable chatty call sites.
var verbosity = func() int {
	v, err := strconv.Atoi(os.Getenv("QLOAD_VERBOSITY"))
	if err != nil {
		return 0
	}
	return v
}()

// V reports whether logging is enabled at the given verbosity level.
func V(level int) bool {
	return level <= verbosity
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	log.Printf("I: "+format, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	log.Print(append([]interface{}{"I: "}, args...)...)
}

func Warningf(ctx context.Context, format string, args ...interface{}) {
	log.Printf("W: "+format, args...)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	log.Printf("E: "+format, args...)
}

func Fatalf(ctx context.Context, format string, args ...interface{}) {
	log.Printf("F: "+format, args...)
	os.Exit(1)
}

func Fatal(ctx context.Context, args ...interface{}) {
	log.Print(append([]interface{}{"F: "}, args...)...)
	os.Exit(1)
}

// WithLogTag is accepted for call-site compatibility; tags are not rendered.
func WithLogTag(ctx context.Context, name string, value interface{}) context.Context {
	return ctx
}

func Flush() {}
