package command

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"

	"fixture-generator/internal/diagnostic"
)

// CLI is the state shared by all commands.
type CLI struct {
	Out io.Writer
	Err io.Writer
	Log logr.Logger
}

func NewCLI(out, errOut io.Writer) *CLI {
	return &CLI{Out: out, Err: errOut, Log: logr.Discard()}
}

// Highlight applies the heading color to the given format and arguments.
func Highlight(format string, a ...any) string {
	return color.New(color.FgCyan, color.Bold).Sprintf(format, a...)
}

// SetLogLevel replaces the logger with a console logger writing to Err.
// Level is one of: silent, error, info, debug, trace.
func (c *CLI) SetLogLevel(level string) error {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "", "silent":
		c.Log = logr.Discard()
		return nil
	case "error":
		lvl = zerolog.ErrorLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "debug":
		lvl = zerolog.DebugLevel
	case "trace":
		lvl = zerolog.TraceLevel
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	output := zerolog.ConsoleWriter{Out: c.Err, TimeFormat: "15:04:05.000", NoColor: color.NoColor}
	zlog := zerolog.New(output).Level(lvl).With().Timestamp().Logger()
	c.Log = zerologr.New(&zlog)

	return nil
}

// PrintDiagnostics writes the recovered events of a request to Err.
func (c *CLI) PrintDiagnostics(d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		var label string
		switch diag.Severity {
		case diagnostic.DiagnosticError:
			label = color.RedString("error")
		case diagnostic.DiagnosticWarning:
			label = color.YellowString("warning")
		default:
			label = color.New(color.Faint).Sprint("info")
		}

		line := fmt.Sprintf("%s[%s]", label, diag.Code)
		if diag.Path != "" {
			line += " " + diag.Path
		}
		line += ": " + diag.Message

		if len(diag.Suggestions) > 0 {
			line += " (did you mean " + strings.Join(diag.Suggestions, ", ") + "?)"
		}

		fmt.Fprintln(c.Err, line)
	}
}
