package compare

import (
	"sort"

	"github.com/harrison/fileset-compare/internal/models"
)

// MembershipMap maps each normalized key to the set of directory labels that
// hold at least one raw base name normalizing to it. It is built once by Build
// and only read afterwards.
type MembershipMap struct {
	labels  []string
	members map[string]map[string]struct{}
	// origins records key -> label -> raw base names that produced the key
	origins map[string]map[string][]string
}

// Build normalizes every base name of every entry and records which
// directories hold each key. Entries are processed in the order given.
func Build(entries []models.DirectoryEntry, rules models.RuleList) (*MembershipMap, error) {
	normalizer, err := NewNormalizer(rules)
	if err != nil {
		return nil, err
	}

	m := &MembershipMap{
		labels:  make([]string, 0, len(entries)),
		members: make(map[string]map[string]struct{}),
		origins: make(map[string]map[string][]string),
	}

	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.Label] {
			return nil, models.NewConfigError("--dir", entry.Label, "directory specified more than once")
		}
		seen[entry.Label] = true
		m.labels = append(m.labels, entry.Label)

		for _, name := range entry.BaseNames {
			m.add(normalizer.Normalize(name), entry.Label, name)
		}
	}

	return m, nil
}

func (m *MembershipMap) add(key, label, raw string) {
	owners, ok := m.members[key]
	if !ok {
		owners = make(map[string]struct{})
		m.members[key] = owners
		m.origins[key] = make(map[string][]string)
	}
	owners[label] = struct{}{}
	m.origins[key][label] = append(m.origins[key][label], raw)
}

// Len returns the number of distinct normalized keys.
func (m *MembershipMap) Len() int {
	return len(m.members)
}

// Labels returns the directory labels in input order.
func (m *MembershipMap) Labels() []string {
	labels := make([]string, len(m.labels))
	copy(labels, m.labels)
	return labels
}

// Keys returns every normalized key, sorted.
func (m *MembershipMap) Keys() []string {
	keys := make([]string, 0, len(m.members))
	for key := range m.members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Contains reports whether the directory labelled label holds key.
func (m *MembershipMap) Contains(key, label string) bool {
	_, ok := m.members[key][label]
	return ok
}

// Owners returns the labels holding key, in input order. It returns nil for
// an unknown key.
func (m *MembershipMap) Owners(key string) []string {
	set, ok := m.members[key]
	if !ok {
		return nil
	}
	owners := make([]string, 0, len(set))
	for _, label := range m.labels {
		if _, ok := set[label]; ok {
			owners = append(owners, label)
		}
	}
	return owners
}

// CountFor returns the number of distinct keys the labelled directory holds.
func (m *MembershipMap) CountFor(label string) int {
	count := 0
	for _, set := range m.members {
		if _, ok := set[label]; ok {
			count++
		}
	}
	return count
}

// Origins returns the sorted raw base names in label that produced key.
func (m *MembershipMap) Origins(key, label string) []string {
	raw := m.origins[key][label]
	names := make([]string, len(raw))
	copy(names, raw)
	sort.Strings(names)
	return names
}

// Collisions lists every (directory, key) pair produced by more than one raw
// base name, ordered by directory input order and then by key.
func (m *MembershipMap) Collisions() []models.Collision {
	var collisions []models.Collision
	keys := m.Keys()
	for _, label := range m.labels {
		for _, key := range keys {
			if len(m.origins[key][label]) < 2 {
				continue
			}
			collisions = append(collisions, models.Collision{
				Label: label,
				Key:   key,
				Names: m.Origins(key, label),
			})
		}
	}
	return collisions
}
