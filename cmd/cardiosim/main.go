package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cardiosim/internal/automation"
	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/config"
	"github.com/san-kum/cardiosim/internal/experiment"
	"github.com/san-kum/cardiosim/internal/export"
	"github.com/san-kum/cardiosim/internal/metrics"
	"github.com/san-kum/cardiosim/internal/pacer"
	"github.com/san-kum/cardiosim/internal/selection"
	"github.com/san-kum/cardiosim/internal/storage"
	"github.com/san-kum/cardiosim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	cfg *config.Config

	drugs      []string
	preset     string
	samples    int
	noCascade  bool
	noSave     bool
	exportPath string
	format     string
	output     string
	plotCurve  bool
	speed      float64
	protoSpeed float64
	theme      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "cardiosim",
		Short:             "cardiovascular drug effect simulator",
		PersistentPreRunE: setup,
		RunE:              runTUI,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (env "+config.EnvData+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, env "+config.EnvConfig+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringSliceVarP(&drugs, "drug", "d", nil, "drugs checked at start")
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive simulator",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringSliceVarP(&drugs, "drug", "d", nil, "drugs checked at start")
	tuiCmd.Flags().StringVar(&theme, "theme", "", "colour theme")

	drugsCmd := &cobra.Command{
		Use:   "drugs",
		Short: "list the drug catalog",
		RunE:  listDrugs,
	}

	curveCmd := &cobra.Command{
		Use:   "curve [drug]",
		Short: "show a drug's pressure curve",
		Args:  cobra.ExactArgs(1),
		RunE:  showCurve,
	}
	curveCmd.Flags().BoolVar(&plotCurve, "plot", false, "plot the sampled curve")

	scheduleCmd := &cobra.Command{
		Use:   "schedule [drug]...",
		Short: "show the heart rate schedule of a selection",
		Args:  cobra.MinimumNArgs(1),
		RunE:  showSchedule,
	}
	scheduleCmd.Flags().BoolVar(&noCascade, "no-cascade", false, "do not check dependent drugs")

	paceCmd := &cobra.Command{
		Use:   "pace [drug]...",
		Short: "play a selection's heart rate schedule in real time",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPace,
	}
	paceCmd.Flags().Float64Var(&speed, "speed", 1, "playback speed factor")
	paceCmd.Flags().BoolVar(&noCascade, "no-cascade", false, "do not check dependent drugs")

	runCmd := &cobra.Command{
		Use:   "run [drug]...",
		Short: "apply a selection headless and record it",
		RunE:  runExperiment,
	}
	runCmd.Flags().StringVar(&preset, "preset", "", "use a preset selection")
	runCmd.Flags().IntVar(&samples, "samples", 0, "samples per curve")
	runCmd.Flags().BoolVar(&noCascade, "no-cascade", false, "do not check dependent drugs")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().StringVarP(&exportPath, "export", "o", "", "also export to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "png, svg, csv or json (default from extension)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout for csv and json when empty)")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tDRUGS")
			for _, name := range cfg.PresetNames() {
				list, _ := cfg.Preset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(list, ", "))
			}
			return w.Flush()
		},
	}

	protocolCmd := &cobra.Command{
		Use:   "protocol [file]",
		Short: "run a scripted sequence of applies",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocol,
	}
	protocolCmd.Flags().Float64Var(&protoSpeed, "speed", 0, "override the protocol speed")

	rootCmd.AddCommand(tuiCmd, drugsCmd, curveCmd, scheduleCmd, paceCmd, runCmd, listCmd, plotCmd, exportCmd, deleteCmd, presetsCmd, protocolCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env, the config file and the data directory. Flags win over
// the environment, which wins over the config file.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path := config.Resolve(configFile, config.EnvConfig, "")
	if path == "" {
		cfg = config.DefaultConfig()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	dataDir = config.Resolve(dataDir, config.EnvData, cfg.DataDir)

	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file.
	f, err := os.OpenFile(filepath.Join(dataDir, "cardiosim.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	if !verbose {
		log.SetLevel(log.InfoLevel)
	}

	if theme != "" {
		cfg.Theme = theme
	}
	model, err := viz.New(viz.Options{Config: cfg, Store: st, Checked: drugs})
	if err != nil {
		return err
	}
	log.Info("starting", "data", dataDir)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func listDrugs(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DRUG\tMIN\tMAX\tFINAL\tEVENTS\tCHECKS")
	for _, d := range catalog.NewRegistry().List() {
		lo, hi := d.Curve.Extremes()
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%d\t%s\n",
			d.Name, lo, hi, d.Curve.Final(), len(d.Schedule),
			strings.Join(catalog.Dependents(d.Name), ", "),
		)
	}
	return w.Flush()
}

func showCurve(cmd *cobra.Command, args []string) error {
	d, err := catalog.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", d.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tSTART\tEND")
	for _, s := range d.Curve.Segments() {
		to := "∞"
		if !math.IsInf(s.To, 1) {
			to = fmt.Sprintf("%.2f", s.To)
		}
		fmt.Fprintf(w, "%.2f\t%s\t%.0f\t%.0f\n", s.From, to, s.Start, s.End)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plotCurve {
		_, ys := d.Curve.Sample(cfg.Samples, cfg.Domain)
		fmt.Println()
		fmt.Println(asciigraph.Plot(ys,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.LowerBound(export.MinPressure),
			asciigraph.UpperBound(export.MaxPressure),
			asciigraph.Caption(d.Name),
		))
	}
	fmt.Printf("\n%s\n", d.Legend)
	return nil
}

// checked resolves names and checks them on a panel, so dependents come
// along unless cascading is off.
func checked(reg *catalog.Registry, names []string) ([]string, error) {
	resolved, err := reg.Resolve(names)
	if err != nil || noCascade {
		return resolved, err
	}
	panel := selection.NewPanel(catalog.GridOrder, catalog.Dependencies)
	if err := panel.Load(resolved); err != nil {
		return nil, err
	}
	return panel.Selected(), nil
}

func apply(reg *catalog.Registry, names []string) (*catalog.Application, error) {
	selected, err := checked(reg, names)
	if err != nil {
		return nil, err
	}
	return reg.Apply(selected)
}

func showSchedule(cmd *cobra.Command, args []string) error {
	app, err := apply(catalog.NewRegistry(), args)
	if err != nil {
		return err
	}

	fmt.Printf("applied: %s\n\n", strings.Join(app.Names(), ", "))
	if len(app.Schedule) == 0 {
		fmt.Println("no heart rate changes")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AT\tINTERVAL\tBPM")
	for _, e := range app.Schedule {
		fmt.Fprintf(w, "%s\t%s\t%.0f\n", e.Delay, e.Interval, pacer.BPM(e.Interval))
	}
	return w.Flush()
}

func runPace(cmd *cobra.Command, args []string) error {
	app, err := apply(catalog.NewRegistry(), args)
	if err != nil {
		return err
	}
	if speed <= 0 {
		return fmt.Errorf("speed must be positive, got %g", speed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	heart := pacer.NewHeart(cfg.HeartInterval)
	runner := pacer.NewRunner(pacer.New(heart, cfg.HeartInterval), func(c pacer.Change) {
		fmt.Printf("%8s  %6s  %4.0f bpm\n", c.Elapsed.Round(time.Millisecond), c.Interval, c.BPM)
	})
	defer runner.Cancel()

	fmt.Printf("%s  %.0f bpm\n", strings.Join(app.Names(), ", "), heart.BPM())
	runner.Start(app.Schedule.Scaled(speed))
	select {
	case <-runner.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func runExperiment(cmd *cobra.Command, args []string) error {
	names := args
	if preset != "" {
		list, ok := cfg.Preset(preset)
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, cfg.PresetNames())
		}
		names = append(append([]string(nil), list...), names...)
	}
	n := cfg.Samples
	if samples > 0 {
		n = samples
	}

	reg := catalog.NewRegistry()
	selected, err := checked(reg, names)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Drugs: selected, Samples: n, Domain: cfg.Domain})
	if err := exp.Setup(reg, metrics.Default()); err != nil {
		return err
	}
	res, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("headline: %s\n", res.Headline)
	fmt.Printf("applied: %s\n", strings.Join(res.Applied, ", "))
	fmt.Printf("plotted: %s\n", res.Plotted)
	printMetrics(os.Stdout, res.Metrics)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}

	if exportPath != "" {
		def, _ := export.ParseFormat(cfg.Export.Format)
		f, err := export.FormatFromPath(exportPath, def)
		if err != nil {
			return err
		}
		path := export.WithExt(exportPath, f)
		if err := export.SaveFile(path, f, export.FromResult(res)); err != nil {
			return err
		}
		fmt.Printf("exported: %s\n", path)
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	fmt.Fprintln(w, "\nmetrics:")
	for _, mt := range metrics.Default() {
		if v, ok := m[mt.Name()]; ok {
			fmt.Fprintf(w, "  %s: %.3f\n", mt.Name(), v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHEADLINE\tPLOTTED\tTIME\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Headline,
			run.Plotted,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, pressures, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(pressures) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("drugs: %s\n\n", strings.Join(meta.Drugs, ", "))
	fmt.Println(asciigraph.Plot(pressures,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(export.MinPressure),
		asciigraph.UpperBound(export.MaxPressure),
		asciigraph.Caption(export.Title(meta.Headline)),
	))
	printMetrics(os.Stdout, meta.Metrics)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, pressures, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	series := export.FromRun(meta, times, pressures)

	var f export.Format
	if format != "" {
		if f, err = export.ParseFormat(format); err != nil {
			return err
		}
	}

	if output == "" {
		if f == "" {
			f = export.JSON
		}
		if f.IsChart() {
			return errors.New("chart formats need --output")
		}
		return export.Write(os.Stdout, f, series)
	}

	if f == "" {
		def, _ := export.ParseFormat(cfg.Export.Format)
		if f, err = export.FormatFromPath(output, def); err != nil {
			return err
		}
	}
	path := export.WithExt(output, f)
	if err := export.SaveFile(path, f, series); err != nil {
		return err
	}
	fmt.Printf("exported: %s\n", path)
	return nil
}

func runProtocol(cmd *cobra.Command, args []string) error {
	p, err := automation.LoadProtocol(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := p.Name
	if name == "" {
		name = filepath.Base(args[0])
	}
	fmt.Printf("protocol: %s (%d steps)\n", name, len(p.Steps))

	results, err := automation.RunProtocol(ctx, p, catalog.NewRegistry(), automation.Options{
		Samples:   cfg.Samples,
		Domain:    cfg.Domain,
		Base:      cfg.HeartInterval,
		Speed:     protoSpeed,
		Store:     st,
		ExportDir: cfg.Export.Dir,
		Presets:   cfg.Preset,
		OnChange: func(step int, c pacer.Change) {
			fmt.Printf("  [%d] %8s  %4.0f bpm\n", step, c.Elapsed.Round(time.Millisecond), c.BPM)
		},
	})
	for _, r := range results {
		fmt.Printf("step %d: %s -> %s\n", r.Step, strings.Join(r.Result.Applied, ", "), r.Result.Plotted)
		if r.RunID != "" {
			fmt.Printf("  run id: %s\n", r.RunID)
		}
		if r.Exported != "" {
			fmt.Printf("  exported: %s\n", r.Exported)
		}
	}
	return err
}
