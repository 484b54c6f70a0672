package script

import (
	"fmt"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

// Repl reads Lua from the terminal until end of input.
//
// Any "init.lua" in the configuration folders is run first, and the line
// history is kept in the user's folder.
func (h *Host) Repl() error {
	dirs := configdir.New("skx", "dosk")

	history := ""
	if folders := dirs.QueryFolders(configdir.Global); len(folders) > 0 {
		if err := folders[0].MkdirAll(); err == nil {
			history = filepath.Join(folders[0].Path, "history")
		}
	}

	for _, folder := range dirs.QueryFolders(configdir.All) {
		if data, err := folder.ReadFile("init.lua"); err == nil {
			if err := h.RunString(string(data)); err != nil {
				fmt.Fprintf(h.w, "error while reading init.lua: %v\n", err)
			}
		}
	}

	rl, err := readline.NewEx(&readline.Config{HistoryFile: history})
	if err != nil {
		return errors.Wrap(err, "failed to start readline")
	}
	defer rl.Close()

	rl.SetPrompt("> ")
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		if h.Feed(ln.Line) {
			rl.SetPrompt("... ")
		} else {
			rl.SetPrompt("> ")
		}
	}
	return nil
}
