package scholarslide

import "strings"

// AbstractSection is a single labeled section of a structured abstract.
type AbstractSection struct {
	// Label as found in the source, case preserved (e.g. "Participants",
	// "Design, Setting, and Participants").
	Label string

	// Text is the section body with paragraph texts joined by single
	// spaces.
	Text string
}

// StructuredAbstract is an ordered mapping from section label to section
// body, decoded from an article's embedded machine-readable abstract. The
// zero value is a valid, empty abstract meaning "no structured abstract
// present"; callers treat it as a signal to use the unstructured fallback
// path, not as an error.
type StructuredAbstract struct {
	sections []AbstractSection
	index    map[string]int
}

// NewStructuredAbstract builds an abstract from sections in document order.
// Duplicate labels keep the first occurrence.
func NewStructuredAbstract(sections []AbstractSection) *StructuredAbstract {
	a := &StructuredAbstract{index: make(map[string]int, len(sections))}
	for _, s := range sections {
		if _, ok := a.index[s.Label]; ok {
			continue
		}
		a.index[s.Label] = len(a.sections)
		a.sections = append(a.sections, s)
	}
	return a
}

// Empty reports whether the abstract has no sections.
func (a *StructuredAbstract) Empty() bool {
	return a == nil || len(a.sections) == 0
}

// Len returns the number of sections.
func (a *StructuredAbstract) Len() int {
	if a == nil {
		return 0
	}
	return len(a.sections)
}

// Get returns the body text for a section label. Lookup is case-sensitive,
// matching labels as they appear in the source.
func (a *StructuredAbstract) Get(label string) (string, bool) {
	if a == nil {
		return "", false
	}
	i, ok := a.index[label]
	if !ok {
		return "", false
	}
	return a.sections[i].Text, true
}

// Labels returns the section labels in document order.
func (a *StructuredAbstract) Labels() []string {
	if a == nil {
		return nil
	}
	labels := make([]string, len(a.sections))
	for i, s := range a.sections {
		labels[i] = s.Label
	}
	return labels
}

// Text joins all section bodies with single spaces, in document order.
// This is the whole-abstract text used by the regex fallback path.
func (a *StructuredAbstract) Text() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.sections))
	for _, s := range a.sections {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}
