// Package selection implements the drug checkbox panel and its dependency
// rules.
package selection

import (
	"errors"
	"fmt"
)

// ErrUnknownItem indicates a name that is not on the panel.
var ErrUnknownItem = errors.New("selection: unknown item")

// Panel is an ordered set of checkboxes where some boxes drive others.
// Checking or unchecking a trigger forces its dependents to the same state,
// and dependents that change propagate to their own dependents in turn.
type Panel struct {
	items   []string
	index   map[string]int
	checked []bool
	deps    map[string][]string
}

func NewPanel(items []string, deps map[string][]string) *Panel {
	p := &Panel{
		items:   append([]string(nil), items...),
		index:   make(map[string]int, len(items)),
		checked: make([]bool, len(items)),
		deps:    make(map[string][]string, len(deps)),
	}
	for i, name := range p.items {
		p.index[name] = i
	}
	for k, v := range deps {
		p.deps[k] = append([]string(nil), v...)
	}
	return p
}

func (p *Panel) Items() []string { return append([]string(nil), p.items...) }
func (p *Panel) Len() int        { return len(p.items) }

// Item returns the name at position i of the panel.
func (p *Panel) Item(i int) string { return p.items[i] }

// Set checks or unchecks name and forces its dependents to the same state.
// A dependent that changes passes the state on to its own dependents; one
// already in that state stops the cascade, so a box the user unchecked by
// hand further down stays unchecked. Dependents missing from the panel are
// skipped.
func (p *Panel) Set(name string, on bool) error {
	if _, ok := p.index[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	p.set(name, on, true, make(map[string]bool))
	return nil
}

func (p *Panel) set(name string, on, root bool, visited map[string]bool) {
	i, ok := p.index[name]
	if !ok || visited[name] {
		return
	}
	visited[name] = true
	if !root && p.checked[i] == on {
		return
	}
	p.checked[i] = on
	for _, dep := range p.deps[name] {
		p.set(dep, on, false, visited)
	}
}

// Toggle flips name and returns its new state.
func (p *Panel) Toggle(name string) (bool, error) {
	i, ok := p.index[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	on := !p.checked[i]
	p.set(name, on, true, make(map[string]bool))
	return on, nil
}

// ToggleAt flips the item at position i.
func (p *Panel) ToggleAt(i int) (bool, error) {
	if i < 0 || i >= len(p.items) {
		return false, fmt.Errorf("%w: position %d", ErrUnknownItem, i)
	}
	return p.Toggle(p.items[i])
}

func (p *Panel) Checked(name string) bool {
	i, ok := p.index[name]
	return ok && p.checked[i]
}

// Selected returns the checked items in panel order.
func (p *Panel) Selected() []string {
	var out []string
	for i, on := range p.checked {
		if on {
			out = append(out, p.items[i])
		}
	}
	return out
}

// Load clears the panel and checks every name with cascading.
func (p *Panel) Load(names []string) error {
	for _, n := range names {
		if _, ok := p.index[n]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownItem, n)
		}
	}
	p.Clear()
	for _, n := range names {
		p.set(n, true, true, make(map[string]bool))
	}
	return nil
}

func (p *Panel) Clear() {
	for i := range p.checked {
		p.checked[i] = false
	}
}
