package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/san-kum/cardiosim/internal/pacer"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrUnknownDrug indicates a name that matches no catalog entry.
	ErrUnknownDrug = errors.New("catalog: unknown drug")

	// ErrAmbiguousDrug indicates a short name matching several entries.
	ErrAmbiguousDrug = errors.New("catalog: ambiguous drug name")
)

type Registry struct {
	drugs map[string]Drug
	keys  map[string]string
}

// NewRegistry returns the built-in catalog.
func NewRegistry() *Registry {
	r := &Registry{
		drugs: make(map[string]Drug),
		keys:  make(map[string]string),
	}
	for _, d := range builtin() {
		r.Register(d)
	}
	return r
}

// Register adds or replaces a drug.
func (r *Registry) Register(d Drug) {
	r.drugs[d.Name] = d
	r.keys[fold(d.Name)] = d.Name
}

// Get resolves a drug by exact name, then by case and accent insensitive
// name, then by unique prefix ("hexa" finds Hexametonio 20mg).
func (r *Registry) Get(name string) (Drug, error) {
	if d, ok := r.drugs[name]; ok {
		return d, nil
	}
	key := fold(name)
	if key == "" {
		return Drug{}, fmt.Errorf("%w: %q", ErrUnknownDrug, name)
	}
	if full, ok := r.keys[key]; ok {
		return r.drugs[full], nil
	}

	var matches []string
	for k, full := range r.keys {
		if strings.HasPrefix(k, key) {
			matches = append(matches, full)
		}
	}
	switch len(matches) {
	case 0:
		return Drug{}, fmt.Errorf("%w: %q", ErrUnknownDrug, name)
	case 1:
		return r.drugs[matches[0]], nil
	default:
		sort.Strings(matches)
		return Drug{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguousDrug, name, strings.Join(matches, ", "))
	}
}

// Resolve maps every name through Get and returns the canonical names.
func (r *Registry) Resolve(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, n := range names {
		d, err := r.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d.Name)
	}
	return out, nil
}

// List returns every drug in panel order, followed by any registered drug
// the panel does not know about, sorted by name.
func (r *Registry) List() []Drug {
	seen := make(map[string]bool, len(r.drugs))
	out := make([]Drug, 0, len(r.drugs))
	for _, name := range GridOrder {
		if d, ok := r.drugs[name]; ok {
			out = append(out, d)
			seen[name] = true
		}
	}
	var extra []string
	for name := range r.drugs {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, r.drugs[name])
	}
	return out
}

// Application is the outcome of pressing apply with a set of drugs checked.
type Application struct {
	// Headline names the first checked drug in panel order.
	Headline string
	// Drugs are the applied drugs in application order.
	Drugs []Drug
	// Plotted is the drug whose curve and legend end up on screen.
	Plotted Drug
	// Schedule merges the pacing schedules of every applied drug.
	Schedule pacer.Schedule
}

// Names lists the applied drug names.
func (a *Application) Names() []string {
	names := make([]string, len(a.Drugs))
	for i, d := range a.Drugs {
		names[i] = d.Name
	}
	return names
}

// Apply orders the checked drugs the way the panel applies them. Nenhuma is
// only applied when nothing else is checked; an empty selection applies it
// too.
func (r *Registry) Apply(checked []string) (*Application, error) {
	names, err := r.Resolve(checked)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}

	app := &Application{Headline: NoDrug}
	for _, name := range GridOrder {
		if selected[name] {
			app.Headline = name
			break
		}
	}

	for _, name := range ApplicationOrder {
		if selected[name] {
			app.Drugs = append(app.Drugs, r.drugs[name])
		}
	}
	for _, name := range names {
		if selected[name] && !contains(ApplicationOrder, name) && name != Nenhuma {
			app.Drugs = append(app.Drugs, r.drugs[name])
			selected[name] = false
		}
	}
	if len(app.Drugs) == 0 {
		none, ok := r.drugs[Nenhuma]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDrug, Nenhuma)
		}
		app.Drugs = []Drug{none}
	}

	schedules := make([]pacer.Schedule, len(app.Drugs))
	for i, d := range app.Drugs {
		schedules[i] = d.Schedule
	}
	app.Schedule = pacer.Merge(schedules...)
	app.Plotted = app.Drugs[len(app.Drugs)-1]
	return app, nil
}

// Dependents returns every drug a trigger pulls in, transitively, in
// discovery order.
func Dependents(name string) []string {
	var out []string
	seen := map[string]bool{name: true}
	var walk func(string)
	walk = func(n string) {
		for _, dep := range Dependencies[n] {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			out = append(out, dep)
			walk(dep)
		}
	}
	walk(name)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// fold lowercases, strips accents and drops spaces and punctuation.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(out) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
