package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/analysis"
	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/engine"
	"github.com/san-kum/spinlab/internal/export"
	"github.com/san-kum/spinlab/internal/fields"
	"github.com/san-kum/spinlab/internal/spin"
	"github.com/san-kum/spinlab/internal/storage"
	"github.com/san-kum/spinlab/internal/thermal"
	"github.com/san-kum/spinlab/internal/units"
	"github.com/san-kum/spinlab/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	dt          float64
	steps       int
	temperature float64
	alpha       float64
	sites       int
	integrator  string
	thermostat  string
	observable  string
	bz          float64
	output      string
	// laser bath parameters
	fluence  float64
	duration float64
	delay    float64
	method   string
	quality  float64
	// live view
	frameRate  int
	frameSteps int
	// svg export
	svgOut    string
	svgColumn int
	svgWidth  int
	svgHeight int
	svgColor  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spinlab",
		Short: "finite-temperature spin dynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spinlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a moment dynamics simulation",
		RunE:  runMoments,
	}
	addRunFlags(runCmd)

	laserCmd := &cobra.Command{
		Use:   "laser",
		Short: "run the laser-heated thermal bath on its own",
		RunE:  runLaser,
	}
	laserCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	laserCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	laserCmd.Flags().Float64Var(&dt, "dt", 1e-15, "timestep")
	laserCmd.Flags().IntVar(&steps, "steps", 10000, "number of steps")
	laserCmd.Flags().Float64Var(&fluence, "fluence", 10, "pulse fluence")
	laserCmd.Flags().Float64Var(&duration, "duration", 50e-15, "pulse duration")
	laserCmd.Flags().Float64Var(&delay, "delay", 1e-12, "pulse delay")
	laserCmd.Flags().StringVar(&method, "method", "rk4", "bath integrator")
	laserCmd.Flags().Float64Var(&quality, "quality", 0, "adaptive step factor, 0 = fixed dt")
	laserCmd.Flags().StringVar(&output, "output", "trace.dat", "trace sink, \"none\" to suppress")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&frameSteps, "frame-steps", 20, "sweeps per rendered frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export one trace column as an SVG polyline",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "trace.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgColumn, "column", 4, "trace column to plot")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().StringVar(&svgColor, "color", "#00ff00", "stroke color")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, laserCmd, liveCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemp, "bath temperature")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "damping")
	cmd.Flags().IntVar(&sites, "sites", config.DefaultSites, "number of sites")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&thermostat, "thermostat", "classical", "thermostat")
	cmd.Flags().StringVar(&observable, "observable", "magnetization", "trace observable")
	cmd.Flags().Float64Var(&bz, "bz", 1.0, "external field z component")
	cmd.Flags().StringVar(&output, "output", "trace.dat", "trace sink, \"none\" to suppress")
}

// resolveConfig builds the run configuration from preset, config file and
// CLI flags, in that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Run.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Run.Steps = steps
	}
	if cmd.Flags().Changed("temp") {
		cfg.Run.Temperature = temperature
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Run.Alpha = alpha
	}
	if cmd.Flags().Changed("sites") {
		cfg.Model.Sites = sites
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Run.Integrator = integrator
	}
	if cmd.Flags().Changed("thermostat") {
		cfg.Run.Thermostat = thermostat
	}
	if cmd.Flags().Changed("observable") {
		cfg.Run.Observable = observable
	}
	if cmd.Flags().Changed("bz") {
		cfg.Field.Bz = bz
	}
	if cmd.Flags().Changed("output") {
		cfg.Run.Output = output
	}
	if cmd.Flags().Changed("fluence") {
		cfg.Laser.Fluence = fluence
	}
	if cmd.Flags().Changed("duration") {
		cfg.Laser.Duration = duration
	}
	if cmd.Flags().Changed("delay") {
		cfg.Laser.Delay = delay
	}
	if cmd.Flags().Changed("method") {
		cfg.Laser.Method = method
	}
	if cmd.Flags().Changed("quality") {
		cfg.Laser.Quality = quality
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles sites, field source and recorder from the
// configuration.
func buildEngine(cfg *config.Config) (*engine.Engine, spin.Method, engine.SweepParams, units.Constants, error) {
	consts := units.SI()

	m, err := spin.ParseMethod(cfg.Run.Integrator)
	if err != nil {
		return nil, 0, engine.SweepParams{}, consts, err
	}
	obs, err := engine.ParseObservable(cfg.Run.Observable)
	if err != nil {
		return nil, 0, engine.SweepParams{}, consts, err
	}
	params, err := cfg.SweepParams()
	if err != nil {
		return nil, 0, engine.SweepParams{}, consts, err
	}

	siteList := cfg.BuildSites()
	probes := make([]int, 0, 3)
	for i := 0; i < len(siteList) && i < 3; i++ {
		probes = append(probes, i)
	}
	rec := engine.NewRecorder(obs, probes, cfg.Run.Output)

	eng, err := engine.New(siteList, fields.NewZeeman(cfg.FieldVector(), consts), consts, rec)
	if err != nil {
		return nil, 0, engine.SweepParams{}, consts, err
	}
	return eng, m, params, consts, nil
}

func runMoments(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, m, params, consts, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d sites, %d steps, %s/%s...\n",
		cfg.Model.Sites, cfg.Run.Steps, cfg.Run.Integrator, cfg.Run.Thermostat)
	start := time.Now()

	ctx := context.Background()
	switch m {
	case spin.MethodEuler:
		err = eng.EvolveEuler(ctx, cfg.Run.Steps, cfg.Run.Dt, params)
	case spin.MethodSymplectic:
		err = eng.EvolveSplit(ctx, cfg.Run.Steps, cfg.Run.Dt, params)
	default:
		err = eng.EvolveRK4(ctx, cfg.Run.Steps, cfg.Run.Dt, params)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	final := eng.Sites()
	mag := analysis.Magnetization(final)
	meta := storage.RunMetadata{
		Kind:        "moments",
		Dt:          cfg.Run.Dt,
		Steps:       cfg.Run.Steps,
		Integrator:  cfg.Run.Integrator,
		Thermostat:  cfg.Run.Thermostat,
		Observable:  cfg.Run.Observable,
		Temperature: cfg.Run.Temperature,
		Alpha:       cfg.Run.Alpha,
		Final:       finalObservables(consts, final),
	}

	runID, err := st.Save(meta, eng.Recorder().Content())
	if err != nil {
		return err
	}
	if err := eng.Recorder().Flush(); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final |m|: %.6f\n", mag.Norm())
	return nil
}

// finalObservables reduces the post-run sites to the metadata summary.
func finalObservables(consts units.Constants, sites []spin.Site) map[string]float64 {
	return map[string]float64{
		"magnetization":    analysis.Magnetization(sites).Norm(),
		"energy":           analysis.Energy(sites),
		"torque":           analysis.Torque(sites).Norm(),
		"spin_temperature": analysis.SpinTemperature(consts, sites, analysis.SpinTemperatureCoefficient),
	}
}

func runLaser(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	bath, err := cfg.BuildBath()
	if err != nil {
		return err
	}
	m, err := thermal.ParseBathMethod(cfg.Laser.Method)
	if err != nil {
		return err
	}

	rec := engine.NewRecorder(engine.ObservableTemperatures, nil, cfg.Run.Output)

	h := cfg.Run.Dt
	peak := bath.State()
	for i := 0; i < cfg.Run.Steps; i++ {
		if cfg.Laser.Quality > 0 {
			if est := bath.EstimateTimestep(cfg.Laser.Quality); !math.IsInf(est, 1) && est < h {
				h = est
			}
		}
		bath.Advance(m, h)
		rec.RecordBath(bath.Time(), bath.State())
		if bath.State().Electron > peak.Electron {
			peak = bath.State()
		}
	}

	final := bath.State()
	meta := storage.RunMetadata{
		Kind:       "laser",
		Dt:         cfg.Run.Dt,
		Steps:      cfg.Run.Steps,
		Integrator: cfg.Laser.Method,
		Observable: "temperatures",
		Final: map[string]float64{
			"electron":      final.Electron,
			"phonon":        final.Phonon,
			"spin":          final.Spin,
			"peak_electron": peak.Electron,
		},
	}

	runID, err := st.Save(meta, rec.Content())
	if err != nil {
		return err
	}
	if err := rec.Flush(); err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("peak Te: %.1f K, final Te: %.1f K\n", peak.Electron, final.Electron)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Run.Output = engine.SinkNone

	eng, m, params, consts, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	model := viz.NewModel(eng, m, params, consts, cfg.Run.Dt, frameSteps, frameRate)
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSTEPS\tDT\tINTEG\tTHERMO\tOBS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2e\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Thermostat,
			run.Observable,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("observable: %s\n", meta.Observable)
	fmt.Printf("samples: %d\n\n", len(rows))

	numCols := len(rows[0]) - 1 // column 0 is time
	maxPlots := 4
	if numCols > maxPlots {
		numCols = maxPlots
	}

	captions := plotCaptions(meta.Observable)
	for col := 1; col <= numCols; col++ {
		data := make([]float64, len(rows))
		for i := range rows {
			if col < len(rows[i]) {
				data[i] = rows[i][col]
			}
		}

		caption := fmt.Sprintf("column %d vs time", col)
		if col-1 < len(captions) {
			caption = captions[col-1]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func plotCaptions(observable string) []string {
	switch observable {
	case "magnetization":
		return []string{"m_x", "m_y", "m_z", "|m|"}
	case "temperatures":
		return []string{"T_electron", "T_phonon", "T_spin"}
	case "spins":
		return []string{"s0_x", "s0_y", "s0_z", "s1_x"}
	default:
		return nil
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	points := export.ColumnPoints(rows, svgColumn)
	svg := export.TraceToSVG(points, svgWidth, svgHeight, svgColor)
	if svg == "" {
		return fmt.Errorf("not enough data in column %d of %s", svgColumn, runID)
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d points)\n", svgOut, len(points))
	return nil
}
