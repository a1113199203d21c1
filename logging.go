/*
NAME
  logging.go

DESCRIPTION
  logging.go supplies the default logging.Logger implementations an
  AudioObject falls back on when no logger has been injected: a
  stderr-writing logger and a logger that discards everything.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audiofile

import (
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"
)

// stderrLogger is the logging.Logger AudioObject uses when
// ShouldLogErrorsToConsole(true) is called without a prior SetLogger:
// a minimal sink writing level-tagged lines to standard error.
type stderrLogger struct{ level int8 }

func newStderrLogger() *stderrLogger { return &stderrLogger{level: logging.Info} }

func (l *stderrLogger) SetLevel(lvl int8) { l.level = lvl }

func (l *stderrLogger) Log(lvl int8, msg string, params ...interface{}) {
	if lvl < l.level {
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s %v\n", levelName(lvl), msg, params)
}

func (l *stderrLogger) Debug(msg string, params ...interface{})   { l.Log(logging.Debug, msg, params...) }
func (l *stderrLogger) Info(msg string, params ...interface{})    { l.Log(logging.Info, msg, params...) }
func (l *stderrLogger) Warning(msg string, params ...interface{}) { l.Log(logging.Warning, msg, params...) }
func (l *stderrLogger) Error(msg string, params ...interface{})   { l.Log(logging.Error, msg, params...) }
func (l *stderrLogger) Fatal(msg string, params ...interface{}) {
	l.Log(logging.Fatal, msg, params...)
	os.Exit(1)
}

func levelName(lvl int8) string {
	switch lvl {
	case logging.Debug:
		return "debug"
	case logging.Info:
		return "info"
	case logging.Warning:
		return "warning"
	case logging.Error:
		return "error"
	case logging.Fatal:
		return "fatal"
	default:
		return "log"
	}
}

// noopLogger discards every call; it backs an AudioObject that has
// never had logging enabled.
type noopLogger struct{}

func (noopLogger) SetLevel(int8)                    {}
func (noopLogger) Log(int8, string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{})     {}
func (noopLogger) Info(string, ...interface{})      {}
func (noopLogger) Warning(string, ...interface{})   {}
func (noopLogger) Error(string, ...interface{})     {}
func (noopLogger) Fatal(string, ...interface{})     {}
