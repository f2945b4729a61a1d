package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/debmagic/debmagic/internal/style"
)

// FormatUndecodedKeys describes unknown keys, collapsing keys nested below
// an unknown table into the table itself.
func FormatUndecodedKeys(undecodedKeys []toml.Key) string {
	unknown := map[string]bool{}
	for _, key := range undecodedKeys {
		covered := false
		for i := 1; i < len(key); i++ {
			if unknown[toml.Key(key[:i]).String()] {
				covered = true
				break
			}
		}
		if !covered {
			unknown[key.String()] = true
		}
	}

	var keys []string
	for k := range unknown {
		keys = append(keys, style.Symbol(k))
	}
	sort.Strings(keys)

	noun := "element"
	if len(keys) > 1 {
		noun += "s"
	}
	return fmt.Sprintf("unknown configuration %s %s", noun, strings.Join(keys, ", "))
}
