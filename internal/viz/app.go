package viz

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/log"
	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/config"
	"github.com/san-kum/cardiosim/internal/experiment"
	"github.com/san-kum/cardiosim/internal/export"
	"github.com/san-kum/cardiosim/internal/metrics"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/playback"
	"github.com/san-kum/cardiosim/internal/selection"
	"github.com/san-kum/cardiosim/internal/storage"
)

const animFPS = 30

// Options configures the TUI. Nil fields fall back to defaults; a nil Store
// disables recording runs.
type Options struct {
	Config   *config.Config
	Registry *catalog.Registry
	Store    *storage.Store
	Checked  []string
}

type (
	beatMsg  struct{}
	animMsg  struct{}
	frameMsg struct{ gen uint64 }
	paceMsg  struct{ pending pacer.Pending }
	savedMsg struct {
		path string
		err  error
	}
	recordedMsg struct {
		id  string
		err error
	}
)

// Model is the simulator screen: heart, chart, legend and drug panel.
type Model struct {
	cfg   *config.Config
	reg   *catalog.Registry
	store *storage.Store

	panel  *selection.Panel
	cursor int
	preset int

	heart    *pacer.Heart
	pacer    *pacer.Pacer
	spring   harmonica.Spring
	scale    float64
	velocity float64

	app      *catalog.Application
	playback *playback.Playback
	frameGen uint64

	input  textinput.Model
	saving bool

	keys     keyMap
	help     help.Model
	showHelp bool
	theme    Theme
	st       styles

	status        string
	failed        bool
	width, height int
}

func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	reg := opts.Registry
	if reg == nil {
		reg = catalog.NewRegistry()
	}

	panel := selection.NewPanel(catalog.GridOrder, catalog.Dependencies)
	if len(opts.Checked) > 0 {
		names, err := reg.Resolve(opts.Checked)
		if err != nil {
			return Model{}, err
		}
		if err := panel.Load(names); err != nil {
			return Model{}, err
		}
	}

	input := textinput.New()
	input.Prompt = "Salvar como: "
	input.Placeholder = "grafico." + cfg.Export.Format
	input.CharLimit = 256

	heart := pacer.NewHeart(cfg.HeartInterval)
	theme := GetTheme(cfg.Theme)
	return Model{
		cfg:    cfg,
		reg:    reg,
		store:  opts.Store,
		panel:  panel,
		heart:  heart,
		pacer:  pacer.New(heart, cfg.HeartInterval),
		spring: harmonica.NewSpring(harmonica.FPS(animFPS), 6.0, 0.5),
		scale:  diastoleScale,
		input:  input,
		keys:   newKeyMap(),
		help:   help.New(),
		theme:  theme,
		st:     newStyles(theme),
		status: "Selecione as drogas e pressione enter",
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.beat(), animate())
}

func (m Model) beat() tea.Cmd {
	return tea.Tick(m.heart.Interval(), func(time.Time) tea.Msg { return beatMsg{} })
}

func animate() tea.Cmd {
	return tea.Tick(time.Second/animFPS, func(time.Time) tea.Msg { return animMsg{} })
}

func (m Model) nextFrame() tea.Cmd {
	gen := m.frameGen
	return tea.Tick(m.cfg.FrameInterval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.saving {
			return m.saveKey(msg)
		}
		return m.handleKey(msg)

	case beatMsg:
		m.heart.Toggle()
		return m, m.beat()

	case animMsg:
		m.scale, m.velocity = m.spring.Update(m.scale, m.velocity, phaseScale(m.heart.Phase()))
		return m, animate()

	case frameMsg:
		if msg.gen != m.frameGen || m.playback == nil {
			return m, nil
		}
		if m.playback.Step() {
			return m, m.nextFrame()
		}
		cmd := m.finished()
		return m, cmd

	case paceMsg:
		if m.pacer.Fire(msg.pending) {
			log.Debug("heart rate", "interval", msg.pending.Event.Interval, "bpm", m.heart.BPM())
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			log.Error("save failed", "path", msg.path, "err", msg.err)
			m.setError("Erro ao salvar: " + msg.err.Error())
			return m, nil
		}
		log.Info("chart saved", "path", msg.path)
		m.setStatus("Gráfico salvo em " + msg.path)
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			log.Error("record failed", "err", msg.err)
			m.setError("Erro ao gravar: " + msg.err.Error())
			return m, nil
		}
		log.Info("run recorded", "id", msg.id)
		m.setStatus("Execução gravada: " + msg.id)
		return m, nil
	}

	if m.saving {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pacer.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Up):
		m.move(-3)
	case key.Matches(msg, m.keys.Down):
		m.move(3)
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	case key.Matches(msg, m.keys.Toggle):
		if _, err := m.panel.ToggleAt(m.cursor); err != nil {
			m.setError(err.Error())
		}
	case key.Matches(msg, m.keys.Apply):
		cmd := m.apply()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		m.panel.Clear()
	case key.Matches(msg, m.keys.Preset):
		m.nextPreset()
	case key.Matches(msg, m.keys.Save):
		if m.playback == nil {
			m.setError("Aplique uma droga antes de salvar")
			return m, nil
		}
		m.saving = true
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Record):
		cmd := m.record()
		return m, cmd
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	}
	return m, nil
}

// saveKey drives the path prompt. An empty path or escape cancels silently.
func (m Model) saveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		if path == "" {
			return m, nil
		}
		return m, m.save(path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.saving = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) move(d int) {
	if n := m.cursor + d; n >= 0 && n < m.panel.Len() {
		m.cursor = n
	}
}

func (m *Model) nextPreset() {
	names := m.cfg.PresetNames()
	if len(names) == 0 {
		return
	}
	name := names[m.preset%len(names)]
	m.preset++

	drugs, _ := m.cfg.Preset(name)
	resolved, err := m.reg.Resolve(drugs)
	if err == nil {
		err = m.panel.Load(resolved)
	}
	if err != nil {
		m.setError(fmt.Sprintf("Preset %s: %v", name, err))
		return
	}
	m.setStatus("Preset: " + name)
}

// apply replaces the running playback and pacing schedule with the checked
// selection. Frames and pacing events left over from the previous apply are
// recognised by their generation and dropped.
func (m *Model) apply() tea.Cmd {
	app, err := m.reg.Apply(m.panel.Selected())
	if err != nil {
		m.setError(err.Error())
		return nil
	}
	pb, err := playback.New(app.Plotted.Name, app.Plotted.Curve, m.cfg.Samples, m.cfg.Domain)
	if err != nil {
		m.setError(err.Error())
		return nil
	}

	m.app, m.playback = app, pb
	m.frameGen++
	pending := m.pacer.Apply(app.Schedule)
	log.Info("applied", "headline", app.Headline, "drugs", app.Names(), "plotted", app.Plotted.Name, "events", len(pending))
	m.setStatus("Aplicado: " + strings.Join(app.Names(), ", "))

	cmds := make([]tea.Cmd, 0, len(pending)+1)
	cmds = append(cmds, m.nextFrame())
	for _, pd := range pending {
		pd := pd
		cmds = append(cmds, tea.Tick(pd.Event.Delay, func(time.Time) tea.Msg { return paceMsg{pending: pd} }))
	}
	return tea.Batch(cmds...)
}

func (m *Model) finished() tea.Cmd {
	log.Info("playback finished", "drug", m.playback.Drug())
	m.setStatus("Concluído: " + m.playback.Drug())
	if !m.cfg.Export.OnComplete {
		return nil
	}
	name := fmt.Sprintf("cardiosim_%s.%s", time.Now().Format("20060102_150405"), m.cfg.Export.Format)
	return m.save(filepath.Join(m.cfg.Export.Dir, name))
}

// result snapshots the current apply with its full series, whatever part of
// it is revealed.
func (m Model) result() *experiment.Result {
	times, pressures := m.playback.Series()
	return &experiment.Result{
		Headline:  m.app.Headline,
		Applied:   m.app.Names(),
		Plotted:   m.app.Plotted.Name,
		Legend:    m.app.Plotted.Legend,
		Times:     times,
		Pressures: pressures,
		Schedule:  m.app.Schedule,
		Metrics:   metrics.Evaluate(times, pressures, metrics.Default()...),
	}
}

func (m Model) save(path string) tea.Cmd {
	def, err := export.ParseFormat(m.cfg.Export.Format)
	if err != nil {
		def = export.PNG
	}
	f, err := export.FormatFromPath(path, def)
	if err != nil {
		return func() tea.Msg { return savedMsg{path: path, err: err} }
	}
	path = export.WithExt(path, f)
	series := export.FromResult(m.result())
	return func() tea.Msg {
		return savedMsg{path: path, err: export.SaveFile(path, f, series)}
	}
}

func (m *Model) record() tea.Cmd {
	if m.store == nil {
		m.setError("Gravação desativada")
		return nil
	}
	if m.playback == nil {
		m.setError("Aplique uma droga antes de gravar")
		return nil
	}
	store, res := m.store, m.result()
	return func() tea.Msg {
		id, err := store.Save(res)
		return recordedMsg{id: id, err: err}
	}
}

func (m *Model) setStatus(s string) { m.status, m.failed = s, false }
func (m *Model) setError(s string)  { m.status, m.failed = s, true }
