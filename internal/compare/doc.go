// Package compare implements the name normalization and set categorization
// engine behind fileset-compare.
//
// The pipeline has three stages:
//
//   - Normalizer rewrites a raw base name through an ordered RuleList. Each rule
//     replaces every non-overlapping occurrence of its match string, and the
//     output of one rule is the input of the next.
//   - Build folds the normalized names of every directory into a MembershipMap:
//     normalized key -> set of directory labels holding it.
//   - Categorize groups keys by their exact owning set and orders the groups by
//     size, then by the input order of the directories, then sorts member keys.
//
// Typical use:
//
//	m, err := compare.Build(entries, rules)
//	if err != nil {
//	    return err
//	}
//	for _, c := range compare.Categorize(m, m.Labels()) {
//	    fmt.Println(c.Labels, c.Keys)
//	}
//
// Two raw names that normalize to the same key are a collision. Collisions are
// the point of the tool and never an error; they are kept as origins on the
// MembershipMap so they can be reported.
package compare
