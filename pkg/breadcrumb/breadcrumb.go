package breadcrumb

import "strings"

// Separator joins breadcrumb components in the canonical string form.
const Separator = " > "

// Breadcrumb is an ordered sequence of non-empty strings describing a
// chunk's position in the document hierarchy. The zero value is an empty
// breadcrumb (depth 0).
type Breadcrumb struct {
	components []string
}

// New builds a Breadcrumb from the given components. Empty components are
// dropped, since an empty breadcrumb component is never valid (§8).
func New(components ...string) Breadcrumb {
	b := Breadcrumb{}
	for _, c := range components {
		if c != "" {
			b.components = append(b.components, c)
		}
	}
	return b
}

// Appending returns a new Breadcrumb with component appended, leaving the
// receiver unmodified.
func (b Breadcrumb) Appending(component string) Breadcrumb {
	if component == "" {
		return b
	}
	out := make([]string, len(b.components), len(b.components)+1)
	copy(out, b.components)
	out = append(out, component)
	return Breadcrumb{components: out}
}

// Components returns a copy of the ordered labels.
func (b Breadcrumb) Components() []string {
	out := make([]string, len(b.components))
	copy(out, b.components)
	return out
}

// Depth is the number of components.
func (b Breadcrumb) Depth() int {
	return len(b.components)
}

// String renders the canonical joined form, e.g. "Guide > Details > Table > Row 1".
func (b Breadcrumb) String() string {
	return strings.Join(b.components, Separator)
}

// Equal reports whether two breadcrumbs have identical components in order.
func (b Breadcrumb) Equal(other Breadcrumb) bool {
	if len(b.components) != len(other.components) {
		return false
	}
	for i := range b.components {
		if b.components[i] != other.components[i] {
			return false
		}
	}
	return true
}
