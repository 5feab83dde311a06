package player

import (
	"sort"

	"github.com/xlab/treeprint"
)

// Summary renders the final styles of every target as a tree.
func (p *Player) Summary() string {
	tree := treeprint.New()
	root := tree.AddBranch("targets")
	for _, t := range p.targets {
		branch := root.AddBranch(t.Label)
		props := make([]string, 0, len(t.styles))
		for prop := range t.styles {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			branch.AddNode(prop + ": " + t.styles[prop])
		}
	}
	return tree.String()
}
