package htmltree

import "github.com/curol/network/htmltoken"

// afeEntry is one slot in the list of active formatting elements: either a
// scope marker (inserted when entering a button/object/etc. subtree) or a
// formatting element together with the start tag token that produced it, so
// the reconstruction algorithm can recreate an equivalent element later.
type afeEntry struct {
	marker bool
	handle NodeHandle
	tag    htmltoken.Tag
}

// activeFormattingElements implements the list described at
// https://html.spec.whatwg.org/multipage/parsing.html#list-of-active-formatting-elements
type activeFormattingElements struct {
	entries []afeEntry
}

func (a *activeFormattingElements) insertMarker() {
	a.entries = append(a.entries, afeEntry{marker: true})
}

func (a *activeFormattingElements) isEmpty() bool { return len(a.entries) == 0 }

func (a *activeFormattingElements) last() (afeEntry, bool) {
	if len(a.entries) == 0 {
		return afeEntry{}, false
	}
	return a.entries[len(a.entries)-1], true
}

// push appends a formatting element, applying the Noah's Ark clause: if
// there are already three elements with the same tag name and identical
// attributes since the last marker, the earliest of them is removed.
func (a *activeFormattingElements) push(handle NodeHandle, tag htmltoken.Tag) {
	matches := 0
	matchIdx := -1
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if e.marker {
			break
		}
		if sameFormattingElement(e.tag, tag) {
			matches++
			matchIdx = i // walking backwards, the last match seen is the earliest entry
		}
	}
	if matches >= 3 && matchIdx != -1 {
		a.entries = append(a.entries[:matchIdx], a.entries[matchIdx+1:]...)
	}
	a.entries = append(a.entries, afeEntry{handle: handle, tag: tag})
}

func sameFormattingElement(a, b htmltoken.Tag) bool {
	if a.Name != b.Name || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for _, attr := range a.Attributes {
		found := false
		for _, other := range b.Attributes {
			if other.Name == attr.Name && other.Value == attr.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// clearToLastMarker removes entries back to and including the last marker.
func (a *activeFormattingElements) clearToLastMarker() {
	for len(a.entries) > 0 {
		last := a.entries[len(a.entries)-1]
		a.entries = a.entries[:len(a.entries)-1]
		if last.marker {
			return
		}
	}
}

// lastMatchSinceMarker returns the last (most recently inserted) entry with
// the given tag name between the end of the list and the previous marker.
func (a *activeFormattingElements) lastMatchSinceMarker(name string) (idx int, entry afeEntry, found bool) {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].marker {
			return 0, afeEntry{}, false
		}
		if a.entries[i].tag.Name == name {
			return i, a.entries[i], true
		}
	}
	return 0, afeEntry{}, false
}

func (a *activeFormattingElements) indexOfHandle(h NodeHandle) (int, bool) {
	for i, e := range a.entries {
		if !e.marker && e.handle == h {
			return i, true
		}
	}
	return 0, false
}

func (a *activeFormattingElements) removeAt(idx int) {
	a.entries = append(a.entries[:idx], a.entries[idx+1:]...)
}

func (a *activeFormattingElements) removeHandle(h NodeHandle) {
	if idx, ok := a.indexOfHandle(h); ok {
		a.removeAt(idx)
	}
}

func (a *activeFormattingElements) replace(idx int, handle NodeHandle, tag htmltoken.Tag) {
	a.entries[idx] = afeEntry{handle: handle, tag: tag}
}

func (a *activeFormattingElements) isInList(h NodeHandle) bool {
	_, ok := a.indexOfHandle(h)
	return ok
}
