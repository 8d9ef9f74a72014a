// Package shell implements the interactive line-based front end of a namespace.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/internal/util"
)

const (
	banner  = "Welcome to In-Memory File System!!!"
	prompt  = "%s $ "
	exitMsg = "Exiting..."
)

// Shell reads commands line by line and runs them against a namespace.
// Every command prints its result or exactly one error line; the session
// only ends on exit or end of input.
type Shell struct {
	ns  memfs.Namespace
	in  *bufio.Scanner
	out io.Writer

	promptClr *color.Color
	infoClr   *color.Color
	okClr     *color.Color
	errClr    *color.Color
	dirClr    *color.Color
}

// New creates a shell over ns. Styling is turned off when useColor is false.
func New(ns memfs.Namespace, in io.Reader, out io.Writer, useColor bool) *Shell {
	sh := &Shell{
		ns:        ns,
		in:        bufio.NewScanner(in),
		out:       out,
		promptClr: color.New(color.FgCyan),
		infoClr:   color.New(color.FgYellow),
		okClr:     color.New(color.FgGreen),
		errClr:    color.New(color.FgRed),
		dirClr:    color.New(color.FgBlue, color.Bold),
	}
	if !useColor {
		for _, c := range []*color.Color{sh.promptClr, sh.infoClr, sh.okClr, sh.errClr, sh.dirClr} {
			c.DisableColor()
		}
	}
	return sh
}

// Run prints the banner and processes commands until exit or end of input.
// Only a failure to read input is returned.
func (sh *Shell) Run() error {
	logger := util.GetLogger("Shell.Run")

	sh.infoClr.Fprintln(sh.out, banner)
	sh.infoClr.Fprintln(sh.out, "Available commands: "+available())

	for {
		sh.promptClr.Fprintf(sh.out, prompt, sh.ns.CwdName())
		if !sh.in.Scan() {
			if err := sh.in.Err(); err != nil {
				logger.Error().Err(err).Msg("Failed to read input")
				return fmt.Errorf("failed to read input: %w", err)
			}
			// End of input
			fmt.Fprintln(sh.out)
			return nil
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		if !sh.Exec(line) {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether the session continues.
func (sh *Shell) Exec(line string) bool {
	logger := util.GetLogger("Shell.Exec")

	op, rest := cutField(strings.TrimSpace(line))
	op = strings.ToLower(op)
	cmd, ok := commands[op]
	if !ok {
		logger.Debug().Str("op", op).Msg("Unknown command")
		sh.errClr.Fprintln(sh.out, "Unknown command. Available commands: "+available())
		return true
	}

	args := cmd.parse(rest)
	if len(args) < cmd.args || (cmd.mode == fieldArgs && len(args) != cmd.args) {
		sh.errClr.Fprintln(sh.out, "Usage: "+cmd.usage)
		return true
	}
	logger.Trace().Str("op", op).Strs("args", args).Msg("Running command")
	if err := cmd.run(sh, args); err != nil {
		if errors.Is(err, errExit) {
			sh.infoClr.Fprintln(sh.out, exitMsg)
			return false
		}
		logger.Debug().Str("op", op).Err(err).Msg("Command failed")
		sh.errClr.Fprintln(sh.out, describe(op, args, err))
	}
	return true
}

// cutField splits s at its first run of whitespace
func cutField(s string) (field, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
