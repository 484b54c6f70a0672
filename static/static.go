// Package static holds the Lua scripts which are built into the binary.
//
// They serve as examples, and as quick checks that the kernel services
// behave on the host they are run on.
package static

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed scripts/*.lua
var content embed.FS

// GetContent returns the embedded filesystem we store within this package.
func GetContent() embed.FS {
	return content
}

// Scripts returns the names of the embedded scripts, without suffix.
func Scripts() ([]string, error) {
	entries, err := fs.ReadDir(content, "scripts")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
	}
	sort.Strings(names)
	return names, nil
}

// Script returns the source of the named script.
func Script(name string) (string, error) {
	data, err := content.ReadFile(path.Join("scripts", name+".lua"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
