package recommend

import "slices"

// labelSet is an insertion-ordered set of candidate labels. Methods never
// mutate the receiver; each returns a new set.
type labelSet []string

func newLabelSet(labels ...string) labelSet {
	return labelSet(nil).with(labels...)
}

func (s labelSet) has(label string) bool {
	return slices.Contains(s, label)
}

// with appends labels not already present.
func (s labelSet) with(labels ...string) labelSet {
	out := slices.Clone(s)
	for _, l := range labels {
		if !out.has(l) {
			out = append(out, l)
		}
	}
	return out
}

// without removes every label in drop.
func (s labelSet) without(drop labelSet) labelSet {
	out := make(labelSet, 0, len(s))
	for _, l := range s {
		if !drop.has(l) {
			out = append(out, l)
		}
	}
	return out
}

// prepend moves front to the head of the set, keeping the remaining order.
func (s labelSet) prepend(front labelSet) labelSet {
	if len(front) == 0 {
		return slices.Clone(s)
	}
	return newLabelSet(front...).with(s...)
}

func (s labelSet) list() []string {
	return slices.Clone([]string(s))
}
