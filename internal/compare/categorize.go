package compare

import (
	"sort"
	"strconv"
	"strings"

	"github.com/harrison/fileset-compare/internal/models"
)

type group struct {
	positions []int
	keys      []string
}

// Categorize groups the keys of m by their exact owning directory set.
//
// Categories are ordered by the number of owning directories, then by the
// owning set read as a sequence of positions in labels, so for inputs A, B, C
// the pairs come out as {A,B}, {A,C}, {B,C}. Keys inside a category are sorted
// byte-wise. Labels present in m but missing from labels are ranked after the
// given ones in m's input order.
func Categorize(m *MembershipMap, labels []string) []models.Category {
	ordered := make([]string, 0, len(labels))
	position := make(map[string]int, len(labels))
	for _, label := range append(append([]string(nil), labels...), m.labels...) {
		if _, ok := position[label]; ok {
			continue
		}
		position[label] = len(ordered)
		ordered = append(ordered, label)
	}

	groups := make(map[string]*group)
	for key, owners := range m.members {
		positions := make([]int, 0, len(owners))
		for label := range owners {
			positions = append(positions, position[label])
		}
		sort.Ints(positions)

		sig := signature(positions)
		g, ok := groups[sig]
		if !ok {
			g = &group{positions: positions}
			groups[sig] = g
		}
		g.keys = append(g.keys, key)
	}

	sorted := make([]*group, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return lessPositions(sorted[i].positions, sorted[j].positions)
	})

	categories := make([]models.Category, 0, len(sorted))
	for _, g := range sorted {
		owners := make([]string, len(g.positions))
		for i, p := range g.positions {
			owners[i] = ordered[p]
		}
		sort.Strings(g.keys)
		categories = append(categories, models.Category{Labels: owners, Keys: g.keys})
	}

	return categories
}

// lessPositions orders by length first, then element by element.
func lessPositions(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func signature(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
