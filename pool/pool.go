// Package pool derives prize entries from raw pool text and the removed-label history
package pool

import (
	"regexp"
	"strconv"
	"strings"
)

// separator matches runs of '#' and newlines between labels
var separator = regexp.MustCompile(`[#\n]+`)

// Entry is one occurrence of a label in the parsed pool
type Entry struct {
	ID      string
	Label   string
	Removed bool
}

// Split returns the trimmed, non-empty labels of raw in input order
func Split(raw string) []string {
	parts := separator.Split(raw, -1)
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// Normalize re-joins the labels of raw with a single '#'
func Normalize(raw string) string {
	return strings.Join(Split(raw), "#")
}

// RemovedCounts maps each label to the number of times it appears in removed
func RemovedCounts(removed []string) map[string]int {
	counts := make(map[string]int, len(removed))
	for _, label := range removed {
		counts[label]++
	}
	return counts
}

// Parse builds the ordered entry list for raw and the removed-label multiset.
// The first removedCount(label) occurrences of each label, in parse order, are marked removed.
// Parse is pure: the same inputs always yield the same entries.
func Parse(raw string, removed []string) []Entry {
	labels := Split(raw)
	quota := RemovedCounts(removed)
	seen := make(map[string]int, len(labels))

	entries := make([]Entry, len(labels))
	for i, label := range labels {
		seen[label]++
		n := seen[label]
		entries[i] = Entry{
			ID:      entryID(i, label, n),
			Label:   label,
			Removed: n <= quota[label],
		}
	}
	return entries
}

func entryID(idx int, label string, occurrence int) string {
	var b strings.Builder
	b.Grow(len(label) + 16)
	b.WriteString("c_")
	b.WriteString(strconv.Itoa(idx))
	b.WriteByte('_')
	b.WriteString(label)
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(occurrence))
	return b.String()
}

// AvailableIndices returns the positions of entries not yet removed
func AvailableIndices(entries []Entry) []int {
	out := make([]int, 0, len(entries))
	for i, e := range entries {
		if !e.Removed {
			out = append(out, i)
		}
	}
	return out
}

// AvailableCount returns the number of entries not yet removed
func AvailableCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if !e.Removed {
			n++
		}
	}
	return n
}

// Find returns the entry with the given id
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
