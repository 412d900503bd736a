package config

import "sort"

// Presets are named drug selections for common classroom demonstrations.
// Dependents are checked by the panel when a preset is loaded, so only the
// triggers need listing.
var Presets = map[string][]string{
	"adrenergicos":    {"Noradrenalina 20mcg", "Adrenalina 20mcg", "Isoprenalina 20mcg", "Efedrina 5mg"},
	"colinergicos":    {"Acetilcolina 20mcg", "Pilocarpina 1,5mg"},
	"bloqueio-alfa":   {"Alfabloqueador"},
	"bloqueio-beta":   {"Propanolol 10mg"},
	"anticolinester":  {"Neostigmina 0,5mg"},
	"antimuscarinico": {"Atropina 10mg"},
	"ganglionar":      {"Nicotina 300mg", "Hexametonio 20mg"},
}

// GetPreset returns a copy of a built-in preset, or nil.
func GetPreset(name string) []string {
	drugs, ok := Presets[name]
	if !ok {
		return nil
	}
	return append([]string(nil), drugs...)
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
