package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nataliegryphon/credwatch/pkg/manager"
)

// confirmReload returns the confirmation hook used by the watch
// command. Non-interactive runs (no terminal on stdin) and --yes both
// auto-accept; otherwise the user is asked on the terminal, defaulting
// to yes like the original confirmation dialog.
func confirmReload(out io.Writer, autoYes bool) manager.ConfirmFunc {
	return func(path string) bool {
		if autoYes || !term.IsTerminal(int(os.Stdin.Fd())) {
			return true
		}

		fmt.Fprintf(out, "Credentials file %s has changed. Reload accounts? [Y/n] ", path)

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			return true
		default:
			return false
		}
	}
}
