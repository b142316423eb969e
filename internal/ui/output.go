package ui

import (
	"fmt"
	"strings"
)

// Status symbols. Messages are not colored; the symbol carries the meaning.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func mark(symbol, msg string) string { return symbol + " " + msg }

func Check(msg string) string   { return mark(SymbolSuccess, msg) }
func Error(msg string) string   { return mark(SymbolError, msg) }
func Warning(msg string) string { return mark(SymbolWarning, msg) }
func Info(msg string) string    { return mark(SymbolInfo, msg) }

func Checkf(format string, args ...any) string   { return Check(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) string   { return Error(fmt.Sprintf(format, args...)) }
func Warningf(format string, args ...any) string { return Warning(fmt.Sprintf(format, args...)) }

var statusSymbols = map[string]string{
	"OK":   SymbolSuccess,
	"WARN": SymbolWarning,
}

// Status prefixes msg with the symbol for a health check status. Unknown
// statuses count as failures.
func Status(status, msg string) string {
	sym, ok := statusSymbols[strings.ToUpper(status)]
	if !ok {
		sym = SymbolError
	}
	return mark(sym, msg)
}

// Header is a bold section title.
func Header(msg string) string { return Bold.Render(msg) }

// FilePath highlights a local path.
func FilePath(path string) string { return Accent.Render(path) }

// Hint renders secondary text.
func Hint(msg string) string { return Muted.Render(msg) }

// Count renders "(n noun)", e.g. "(1 block)" or "(150 blocks)".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}
