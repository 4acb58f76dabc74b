package rule

// Prune walks root, marking every Test on a path to an allowed MIME as
// Active, and returns a new root whose Subtests contain only kept nodes.
// The original tree is left untouched; Prune builds a parallel structure
// so that a compile run which inspects both the raw and pruned trees
// (e.g. for diagnostics) can still do so.
func Prune(root *Test, exceptions ExceptionSet) *Test {
	pruned := shallowCopy(root)
	pruned.Subtests = pruneChildren(root.Subtests, exceptions, pruned)
	pruned.Active = len(pruned.Subtests) > 0
	return pruned
}

// pruneChildren keeps a child whose MIME action survives the exception
// set, and a child without a MIME action if any of its descendants
// survive ("keep if active"). A child whose MIME action is in the
// exception set is dropped together with its whole subtree.
func pruneChildren(children []*Test, exceptions ExceptionSet, newParent *Test) []*Test {
	var kept []*Test
	for _, child := range children {
		if child.SetMime != "" {
			if exceptions.Contains(child.SetMime) {
				continue
			}
			c := shallowCopy(child)
			c.Parent = newParent
			c.Active = true
			c.Subtests = pruneChildren(child.Subtests, exceptions, c)
			kept = append(kept, c)
			continue
		}

		c := shallowCopy(child)
		c.Parent = newParent
		c.Subtests = pruneChildren(child.Subtests, exceptions, c)
		if len(c.Subtests) > 0 {
			c.Active = true
			kept = append(kept, c)
		}
	}
	return kept
}

func shallowCopy(t *Test) *Test {
	c := *t
	c.Subtests = nil
	return &c
}
