// Package alias manages display aliases for PokerNow players: a TOML file
// of saved aliases, grouping of players that share a platform id and an
// interactive prompt to assign new ones.
package alias

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"

	"github.com/BurntSushi/toml"

	"github.com/lox/pnconvert/internal/fileutil"
)

// file is the on-disk layout:
//
//	[aliases]
//	"CT @ eNVKMq2Tcb" = "CT"
type file struct {
	Aliases map[string]string `toml:"aliases"`
}

// Load reads an alias file. A missing file yields an empty map.
func Load(path string) (map[string]string, error) {
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decode alias file %s: %w", path, err)
	}
	if f.Aliases == nil {
		f.Aliases = map[string]string{}
	}
	return f.Aliases, nil
}

// Save writes aliases to path atomically, merging over whatever the file
// already holds.
func Save(path string, aliases map[string]string) error {
	existing, err := Load(path)
	if err != nil {
		return err
	}
	maps.Copy(existing, aliases)

	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(file{Aliases: existing})
	})
}

// Merge returns a new map with the entries of every map in order, later
// maps winning.
func Merge(sources ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range sources {
		maps.Copy(out, m)
	}
	return out
}
