package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/squareup/colstore/command"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
)

func runShell(session *command.Session, vi bool, out io.Writer) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return errors.WithStack(err)
	}
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:            filepath.Join(home, ".colshell.history"),
		DisableAutoSaveHistory: true,
		VimMode:                vi,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	defer common.InvokeCloser(rl)
	for {
		// Gather multi-line statement terminated by a ;
		rl.SetPrompt("colstore> ")
		var cmd []string
		for {
			line, err := rl.Readline()
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			if err != nil {
				return errors.WithStack(err)
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			cmd = append(cmd, line)
			if strings.HasSuffix(line, ";") {
				break
			}
			rl.SetPrompt("          ")
		}
		statement := strings.Join(cmd, " ")
		_ = rl.SaveHistory(statement)

		if err := executeStatement(session, statement, out); err != nil {
			fmt.Fprintf(out, "%v\n", err)
		}
	}
}
