package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/ZebulonRouseFrantzich/undetected/internal/binary"
)

// setupLogging builds the console logger used by every command.
// Logs go to w (stderr) so stdout carries only command output. Colors are
// used only when w is a terminal.
func setupLogging(w io.Writer, level string) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}).With().Timestamp().Logger()

	switch strings.ToLower(level) {
	case "debug":
		return logger.Level(zerolog.DebugLevel)
	case "info":
		return logger.Level(zerolog.InfoLevel)
	case "warn":
		return logger.Level(zerolog.WarnLevel)
	case "error":
		return logger.Level(zerolog.ErrorLevel)
	default:
		return logger.Level(zerolog.InfoLevel)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// zerologAdapter exposes a zerolog.Logger as a binary.Logger.
type zerologAdapter struct {
	log zerolog.Logger
}

var _ binary.Logger = zerologAdapter{}

func (a zerologAdapter) Debug(msg string, keysAndValues ...any) {
	emit(a.log.Debug(), msg, keysAndValues)
}

func (a zerologAdapter) Info(msg string, keysAndValues ...any) {
	emit(a.log.Info(), msg, keysAndValues)
}

func (a zerologAdapter) Warn(msg string, keysAndValues ...any) {
	emit(a.log.Warn(), msg, keysAndValues)
}

func (a zerologAdapter) Error(msg string, keysAndValues ...any) {
	emit(a.log.Error(), msg, keysAndValues)
}

// emit attaches key-value pairs to e and sends it. A dangling key is logged
// under "extra".
func emit(e *zerolog.Event, msg string, keysAndValues []any) {
	if e == nil {
		return
	}

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	if len(keysAndValues)%2 == 1 {
		e = e.Interface("extra", keysAndValues[len(keysAndValues)-1])
	}

	e.Msg(msg)
}
