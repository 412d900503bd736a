package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/config"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/storage"
)

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := New(opts)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, k)
	}
	return m
}

// finish steps the playback to its end and returns the last command.
func finish(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i <= m.cfg.Samples && !m.playback.Done(); i++ {
		m, cmd = update(t, m, frameMsg{gen: m.frameGen})
	}
	if !m.playback.Done() {
		t.Fatal("playback did not finish")
	}
	return m, cmd
}

func TestNewPrechecksWithDependents(t *testing.T) {
	m := newModel(t, Options{Checked: []string{"hexa"}})
	for _, name := range []string{catalog.Hexametonio, catalog.Nicotina, catalog.Atropina, catalog.Acetilcolina, catalog.Pilocarpina} {
		if !m.panel.Checked(name) {
			t.Errorf("expected %s checked", name)
		}
	}

	if _, err := New(Options{Checked: []string{"cafeina"}}); err == nil {
		t.Error("expected error for unknown drug")
	}
}

func TestToggleCascades(t *testing.T) {
	m := newModel(t, Options{})
	m = press(t, m, runes("l"), runes("x"))

	if m.cursor != 1 {
		t.Fatalf("expected cursor on 1, got %d", m.cursor)
	}
	got := m.panel.Selected()
	want := []string{catalog.Noradrenalina, catalog.Alfabloqueador, catalog.Adrenalina}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}

	m = press(t, m, runes("x"))
	if len(m.panel.Selected()) != 0 {
		t.Errorf("expected everything unchecked, got %v", m.panel.Selected())
	}
}

func TestCursorStaysOnPanel(t *testing.T) {
	m := newModel(t, Options{})
	m = press(t, m, runes("k"), runes("h"))
	if m.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, runes("j"))
	}
	if m.cursor != 12 {
		t.Errorf("expected cursor on the last row, got %d", m.cursor)
	}
}

func TestApplyAndPlayback(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Alfabloqueador}})
	m.heart.SetInterval(100 * time.Millisecond)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected frame and pacing commands")
	}
	if m.playback == nil || m.app == nil {
		t.Fatal("expected playback after apply")
	}
	if m.app.Headline != catalog.Noradrenalina {
		t.Errorf("expected headline %s, got %s", catalog.Noradrenalina, m.app.Headline)
	}
	if m.playback.Drug() != catalog.Alfabloqueador {
		t.Errorf("expected %s on the chart, got %s", catalog.Alfabloqueador, m.playback.Drug())
	}
	if m.heart.Interval() != pacer.DefaultInterval {
		t.Errorf("expected heart reset to %v, got %v", pacer.DefaultInterval, m.heart.Interval())
	}

	m, cmd = update(t, m, frameMsg{gen: m.frameGen})
	if cmd == nil || m.playback.Index() != 2 {
		t.Fatalf("expected one more sample and another frame, got index %d", m.playback.Index())
	}

	m, cmd = finish(t, m)
	if cmd != nil {
		t.Error("expected no command at the end without auto export")
	}
	if !strings.Contains(m.status, catalog.Alfabloqueador) {
		t.Errorf("expected completion status, got %q", m.status)
	}

	idx := m.playback.Index()
	m, _ = update(t, m, frameMsg{gen: m.frameGen})
	if m.playback.Index() != idx {
		t.Error("finished playback advanced")
	}
}

func TestReapplySupersedes(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Efedrina}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	staleFrame := m.frameGen
	stalePace := m.pacer.Generation()
	m, _ = update(t, m, frameMsg{gen: staleFrame})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.playback.Index() != 1 {
		t.Fatalf("expected a fresh playback, got index %d", m.playback.Index())
	}

	m, cmd := update(t, m, frameMsg{gen: staleFrame})
	if cmd != nil || m.playback.Index() != 1 {
		t.Error("stale frame advanced the new playback")
	}

	m, _ = update(t, m, paceMsg{pending: pacer.Pending{Generation: stalePace, Event: pacer.Event{Interval: 100 * time.Millisecond}}})
	if m.heart.Interval() != pacer.DefaultInterval {
		t.Errorf("stale pacing event applied: %v", m.heart.Interval())
	}

	current := pacer.Pending{Generation: m.pacer.Generation(), Event: pacer.Event{Interval: 500 * time.Millisecond}}
	m, _ = update(t, m, paceMsg{pending: current})
	if m.heart.Interval() != 500*time.Millisecond {
		t.Errorf("expected current event applied, got %v", m.heart.Interval())
	}
}

func TestBeatAndAnimation(t *testing.T) {
	m := newModel(t, Options{})
	for round := 0; round < 2; round++ {
		target := phaseScale(m.heart.Phase())
		before := m.scale
		for i := 0; i < 5; i++ {
			m, _ = update(t, m, animMsg{})
		}
		if abs(m.scale-target) >= abs(before-target) && before != target {
			t.Errorf("expected scale to move towards %v, went from %v to %v", target, before, m.scale)
		}

		phase := m.heart.Phase()
		var cmd tea.Cmd
		m, cmd = update(t, m, beatMsg{})
		if cmd == nil || m.heart.Phase() == phase {
			t.Error("expected the heart to toggle and reschedule")
		}
	}
	if m.heart.Beats() != 1 {
		t.Errorf("expected one full beat, got %d", m.heart.Beats())
	}
}

func TestSaveRequiresPlayback(t *testing.T) {
	m := newModel(t, Options{})
	m = press(t, m, runes("s"))
	if m.saving {
		t.Error("save prompt opened without a chart")
	}
	if !m.failed {
		t.Error("expected an error status")
	}
}

func TestSaveCancelIsSilent(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Efedrina}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	status := m.status

	for _, cancel := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEsc}} {
		m = press(t, m, runes("s"))
		if !m.saving {
			t.Fatal("expected save prompt")
		}
		var cmd tea.Cmd
		m, cmd = update(t, m, cancel)
		if m.saving || cmd != nil {
			t.Errorf("%v: expected prompt closed without a command", cancel.Type)
		}
		if m.status != status || m.failed {
			t.Errorf("%v: status changed to %q", cancel.Type, m.status)
		}
	}
}

func TestSaveChart(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Hexametonio}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("s"))

	path := filepath.Join(t.TempDir(), "grafico")
	m.input.SetValue(path)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected save command")
	}

	msg, ok := cmd().(savedMsg)
	if !ok {
		t.Fatalf("expected savedMsg")
	}
	if msg.err != nil {
		t.Fatalf("save failed: %v", msg.err)
	}
	if msg.path != path+".png" {
		t.Errorf("expected default png extension, got %s", msg.path)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Errorf("chart not written: %v", err)
	}

	m, _ = update(t, m, msg)
	if m.failed || !strings.Contains(m.status, msg.path) {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestSaveFailureShown(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Hexametonio}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, runes("s"))
	m.input.SetValue("grafico.pdf")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, cmd())
	if !m.failed {
		t.Errorf("expected error status, got %q", m.status)
	}
}

func TestAutoExportOnComplete(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Samples = 5
	cfg.Export.OnComplete = true
	cfg.Export.Format = "csv"
	cfg.Export.Dir = t.TempDir()

	m := newModel(t, Options{Config: cfg, Checked: []string{catalog.Nicotina}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := finish(t, m)
	if cmd == nil {
		t.Fatal("expected export command at the end")
	}
	msg := cmd().(savedMsg)
	if msg.err != nil {
		t.Fatalf("export failed: %v", msg.err)
	}
	if filepath.Dir(msg.path) != cfg.Export.Dir || filepath.Ext(msg.path) != ".csv" {
		t.Errorf("unexpected export path %s", msg.path)
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != cfg.Samples+1 {
		t.Errorf("expected %d lines, got %d", cfg.Samples+1, lines)
	}
}

func TestRecordRun(t *testing.T) {
	store := storage.New(t.TempDir())
	m := newModel(t, Options{Store: store, Checked: []string{catalog.Atropina}})

	m = press(t, m, runes("r"))
	if !m.failed {
		t.Error("expected error recording before apply")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, runes("r"))
	if cmd == nil {
		t.Fatal("expected record command")
	}
	m, _ = update(t, m, cmd())
	if m.failed {
		t.Fatalf("record failed: %s", m.status)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Plotted != catalog.Atropina {
		t.Errorf("expected %s plotted, got %s", catalog.Atropina, runs[0].Plotted)
	}
	if runs[0].Samples != m.cfg.Samples {
		t.Errorf("expected full series recorded, got %d samples", runs[0].Samples)
	}
}

func TestPresetAndClear(t *testing.T) {
	m := newModel(t, Options{})
	m = press(t, m, runes("p"))

	first := m.cfg.PresetNames()[0]
	want, _ := m.cfg.Preset(first)
	for _, name := range want {
		if !m.panel.Checked(name) {
			t.Errorf("expected %s checked by preset %s", name, first)
		}
	}

	m = press(t, m, runes("c"))
	if len(m.panel.Selected()) != 0 {
		t.Errorf("expected clear to uncheck everything, got %v", m.panel.Selected())
	}
}

func TestThemeCycles(t *testing.T) {
	m := newModel(t, Options{})
	name := m.theme.Name
	m = press(t, m, runes("t"))
	if m.theme.Name == name {
		t.Error("expected a different theme")
	}
}

func TestView(t *testing.T) {
	m := newModel(t, Options{Checked: []string{catalog.Propanolol}})
	view := m.View()
	for _, want := range []string{catalog.NoDrug, "bpm", "[x] " + catalog.Propanolol, "[ ] " + catalog.Nenhuma} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view = m.View()
	if !strings.Contains(view, "Propanolol: Bloqueia") {
		t.Error("view missing the legend of the plotted drug")
	}
	if !strings.Contains(view, m.app.Headline) {
		t.Error("view missing the headline")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, Options{})
	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
