package command

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Named is a command tree root exposed under a canonical name plus aliases.
type Named struct {
	Node    *Node
	Aliases []string
}

var registry = map[string]*Named{}

// Register binds node under name and adds it, plus all aliases, to the
// top-level command table. Alias keys reference the identical Named value.
// Collisions with earlier registrations are non-fatal warnings; the earlier
// binding wins.
func Register(name string, node *Node, aliases ...string) *Named {
	if err := node.Bind(name); err != nil {
		log.Warn().Str("name", name).Msg(err.Error())
	}
	named := &Named{Node: node, Aliases: aliases}
	for _, key := range append([]string{name}, aliases...) {
		if _, exists := registry[key]; exists {
			log.Warn().Str("name", key).Msg("Command name collision; keeping earlier binding")
			continue
		}
		registry[key] = named
	}
	return named
}

// Lookup returns the command registered under name or alias.
func Lookup(name string) (*Named, bool) {
	named, ok := registry[name]
	return named, ok
}

// All returns every registered command once, sorted by canonical name.
func All() []*Named {
	seen := map[*Named]bool{}
	list := make([]*Named, 0, len(registry))
	for _, named := range registry {
		if seen[named] {
			continue
		}
		seen[named] = true
		list = append(list, named)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Node.Name() < list[j].Node.Name()
	})
	return list
}
