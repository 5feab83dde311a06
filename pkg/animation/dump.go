package animation

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the registry as a tree: one branch per element in
// registration order, one node per live tween. Targets implementing
// fmt.Stringer are shown by name.
func (s *Scheduler) Dump() string {
	tree := treeprint.New()
	root := tree.AddBranch(fmt.Sprintf("scheduler %s, %d element(s)", s.state, len(s.entries)))
	for _, e := range s.Entries() {
		label := fmt.Sprintf("%T", e.Target())
		if named, ok := e.Target().(fmt.Stringer); ok {
			label = named.String()
		}
		branch := root.AddBranch(fmt.Sprintf("%s %s %s progress %.3f", label, e.Mode(), e.EaseName(), e.Progress()))
		for _, tw := range e.Compositor().Tweens() {
			line := fmt.Sprintf("%s = %s", tw.Property(), tw)
			if tw.Finished() {
				line += " (finished)"
			}
			branch.AddNode(line)
		}
	}
	return tree.String()
}
