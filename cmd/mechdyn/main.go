package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/mechdyn/internal/config"
	"github.com/san-kum/mechdyn/internal/control"
	"github.com/san-kum/mechdyn/internal/dynamics"
	"github.com/san-kum/mechdyn/internal/mechanism"
	"github.com/san-kum/mechdyn/internal/models"
	"github.com/san-kum/mechdyn/internal/state"
	"github.com/san-kum/mechdyn/internal/storage"
	"github.com/san-kum/mechdyn/internal/sweep"
	"github.com/san-kum/mechdyn/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	gravitySpec string
	// Sweep parameters
	sweepJoint   string
	sweepCoord   int
	sweepFrom    float64
	sweepTo      float64
	sweepSamples int
	sweepWorkers int
	saveRun      bool
	showPlot     bool
	// Plot geometry
	plotSeries string
	plotWidth  int
	plotHeight int
	// Pose rendering
	canvasW  int
	canvasH  int
	svgPath  string
	svgScale float64
	randPose bool
	// Inverse dynamics accelerations
	vdotSpec string
	// Benchmark iterations
	iters   int
	outFile string
)

// main registers the mechdyn commands and launches the interactive explorer
// when no subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mechdyn",
		Short: "rigid body kinematics and dynamics workbench",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunExplorer(models.NewRegistry())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mechdyn", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset for the model")
	rootCmd.PersistentFlags().StringVar(&gravitySpec, "gravity", "", "gravity vector x,y,z")

	describeCmd := &cobra.Command{
		Use:   "describe [model]",
		Short: "show topology, joints and mass distribution",
		Args:  cobra.ExactArgs(1),
		RunE:  describeModel,
	}

	massCmd := &cobra.Command{
		Use:   "massmatrix [model]",
		Short: "print the joint-space mass matrix at the configured pose",
		Args:  cobra.ExactArgs(1),
		RunE:  printMassMatrix,
	}

	invdynCmd := &cobra.Command{
		Use:   "invdyn [model]",
		Short: "torques for desired accelerations at the configured pose",
		Args:  cobra.ExactArgs(1),
		RunE:  inverseDynamics,
	}
	invdynCmd.Flags().StringVar(&vdotSpec, "vdot", "", "desired accelerations, comma separated (default zero)")

	energyCmd := &cobra.Command{
		Use:   "energy [model]",
		Short: "energy, mass and momentum summary",
		Args:  cobra.ExactArgs(1),
		RunE:  energySummary,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "evaluate quantities across a joint coordinate range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepJoint, "joint", "", "joint to sweep")
	sweepCmd.Flags().IntVar(&sweepCoord, "coord", 0, "coordinate within the joint")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -math.Pi, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", math.Pi, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSamples, "samples", config.DefaultSamples, "number of samples")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0 = one per cpu)")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "save the run under the data directory")
	sweepCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the swept quantities")
	sweepCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	sweepCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSeries, "series", "", "plot a single quantity")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata, or full data with --out",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "write full run data to a json file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "write samples to a csv file instead of stdout")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark dynamics queries",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().IntVar(&iters, "iters", 10000, "evaluations per query")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	poseCmd := &cobra.Command{
		Use:   "pose [model]",
		Short: "draw the configured pose",
		Args:  cobra.ExactArgs(1),
		RunE:  renderPose,
	}
	poseCmd.Flags().IntVar(&canvasW, "width", 60, "canvas width in cells")
	poseCmd.Flags().IntVar(&canvasH, "height", 24, "canvas height in cells")
	poseCmd.Flags().StringVar(&svgPath, "svg", "", "write an svg file instead of drawing")
	poseCmd.Flags().Float64Var(&svgScale, "scale", 4, "svg pixels per dot")
	poseCmd.Flags().BoolVar(&randPose, "rand", false, "randomize the configuration (seeded)")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive pose explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunExplorer(models.NewRegistry())
		},
	}

	rootCmd.AddCommand(describeCmd, massCmd, invdynCmd, energyCmd, sweepCmd, plotCmd, listCmd, exportCmd, exportCSVCmd, benchCmd, presetsCmd, poseCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the effective config for a model: defaults, then the
// named preset, then the config file, with --gravity on top.
func loadScenario(model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.Model = model
		cfg = fileCfg
	}

	if gravitySpec != "" {
		g, err := parseFloats(gravitySpec)
		if err != nil {
			return nil, fmt.Errorf("bad --gravity: %w", err)
		}
		cfg.Gravity = g
	}

	return cfg, nil
}

func buildState(cfg *config.Config) (*mechanism.Mechanism, *state.MechanismState, error) {
	m, err := cfg.Build(models.NewRegistry())
	if err != nil {
		return nil, nil, err
	}
	st := state.New(m)
	if err := cfg.Apply(st); err != nil {
		return nil, nil, err
	}
	return m, st, nil
}

func buildController(cfg *config.Config, m *mechanism.Mechanism) (control.Controller, error) {
	switch cfg.Controller.Kind {
	case "", "none":
		return nil, nil
	case "gravity":
		return control.NewGravityCompensation(m), nil
	case "pd":
		if len(cfg.Controller.Target) != m.NQ() {
			return nil, fmt.Errorf("pd target has %d coordinates, model has %d", len(cfg.Controller.Target), m.NQ())
		}
		return control.NewJointPD(m, cfg.Controller.Target, cfg.Controller.Kp, cfg.Controller.Kd), nil
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller.Kind)
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// coordLabels returns one label per velocity coordinate, joint names with an
// index suffix for multi-coordinate joints.
func coordLabels(st *state.MechanismState) []string {
	labels := make([]string, 0, st.NV())
	for _, j := range st.Mechanism().TreeJoints() {
		for k := 0; k < j.NV(); k++ {
			label := j.Name()
			if j.NV() > 1 {
				label = fmt.Sprintf("%s[%d]", j.Name(), k)
			}
			labels = append(labels, label)
		}
	}
	return labels
}

func describeModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	m, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	g := m.Gravity()
	fmt.Println(m.String())
	fmt.Printf("nq: %d  nv: %d  total mass: %g\n", m.NQ(), m.NV(), dynamics.TotalMass(st))
	fmt.Printf("gravity: (%g, %g, %g)\n\n", g.X, g.Y, g.Z)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOINT\tTYPE\tNQ\tNV\tPREDECESSOR\tSUCCESSOR")
	for _, j := range m.Joints() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			j.Name(), j.Type(), j.NQ(), j.NV(), j.Predecessor().Name(), j.Successor().Name())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tCOM")
	for _, b := range m.Bodies() {
		if !b.HasInertia() {
			fmt.Fprintf(w, "%s\t-\t-\n", b.Name())
			continue
		}
		com := b.Inertia().CenterOfMass()
		fmt.Fprintf(w, "%s\t%g\t(%.3f, %.3f, %.3f)\n", b.Name(), b.Inertia().Mass, com.X, com.Y, com.Z)
	}
	return w.Flush()
}

func printMassMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	_, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	h := dynamics.MassMatrix(st)
	fmt.Printf("mass matrix (%dx%d):\n\n", st.NV(), st.NV())
	fmt.Printf("%.6g\n\n", mat.Formatted(h, mat.Prefix(""), mat.Squeeze()))

	var chol mat.Cholesky
	fmt.Printf("positive definite: %t\n", chol.Factorize(h))
	fmt.Printf("condition number: %.4g\n", mat.Cond(h, 2))
	return nil
}

func inverseDynamics(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	m, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	vdot := make([]float64, st.NV())
	if vdotSpec != "" {
		vdot, err = parseFloats(vdotSpec)
		if err != nil {
			return fmt.Errorf("bad --vdot: %w", err)
		}
		if len(vdot) != st.NV() {
			return fmt.Errorf("vdot has %d entries, model has %d velocity coordinates", len(vdot), st.NV())
		}
	}

	tau := dynamics.InverseDynamics(st, vdot, nil)
	labels := coordLabels(st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COORDINATE\tVDOT\tTAU")
	for i, label := range labels {
		fmt.Fprintf(w, "%s\t%.4f\t%.6f\n", label, vdot[i], tau[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ctrl, err := buildController(cfg, m)
	if err != nil {
		return err
	}
	if ctrl != nil {
		u := make([]float64, st.NV())
		ctrl.Torques(st, u)
		fmt.Printf("\n%s controller torques:\n", cfg.Controller.Kind)
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COORDINATE\tU")
		for i, label := range labels {
			fmt.Fprintf(w, "%s\t%.6f\n", label, u[i])
		}
		return w.Flush()
	}
	return nil
}

func energySummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	_, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	ke := dynamics.KineticEnergy(st)
	pe := dynamics.GravitationalPotentialEnergy(st)
	com := dynamics.CenterOfMass(st)
	mom := dynamics.Momentum(st)

	fmt.Printf("model: %s\n", cfg.Model)
	fmt.Printf("kinetic energy: %.6f\n", ke)
	fmt.Printf("potential energy: %.6f\n", pe)
	fmt.Printf("total energy: %.6f\n", ke+pe)
	fmt.Printf("total mass: %g\n", dynamics.TotalMass(st))
	fmt.Printf("center of mass: (%.4f, %.4f, %.4f)\n", com.X, com.Y, com.Z)
	fmt.Printf("angular momentum: (%.4f, %.4f, %.4f)\n", mom.Angular.X, mom.Angular.Y, mom.Angular.Z)
	fmt.Printf("linear momentum: (%.4f, %.4f, %.4f)\n", mom.Linear.X, mom.Linear.Y, mom.Linear.Z)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	_, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	p := sweep.Params{
		Joint:   cfg.Sweep.Joint,
		Coord:   cfg.Sweep.Coord,
		From:    cfg.Sweep.From,
		To:      cfg.Sweep.To,
		Samples: cfg.Sweep.Samples,
		Workers: cfg.Sweep.Workers,
	}
	if cmd.Flags().Changed("joint") {
		p.Joint = sweepJoint
	}
	if cmd.Flags().Changed("coord") {
		p.Coord = sweepCoord
	}
	if cmd.Flags().Changed("from") {
		p.From = sweepFrom
	}
	if cmd.Flags().Changed("to") {
		p.To = sweepTo
	}
	if cmd.Flags().Changed("samples") {
		p.Samples = sweepSamples
	}
	if cmd.Flags().Changed("workers") {
		p.Workers = sweepWorkers
	}
	if p.Joint == "" {
		return fmt.Errorf("no sweep joint: pass --joint or a preset/config with a sweep section")
	}

	quantities := append(sweep.DefaultQuantities(), sweep.JointBiasTorque(p.Joint))

	fmt.Printf("sweeping %s[%d] over [%g, %g], %d samples...\n", p.Joint, p.Coord, p.From, p.To, p.Samples)
	start := time.Now()
	res, err := sweep.Run(context.Background(), st, p, quantities)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tMIN\tMAX")
	for _, name := range res.Names {
		col := res.Series[name]
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", name, floats.Min(col), floats.Max(col))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(cfg.Model, res)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.PlotResult(res, plotWidth, plotHeight))
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	res, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", meta.Samples)

	if plotSeries != "" {
		out, err := viz.PlotSeries(res, plotSeries, plotWidth, plotHeight)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(viz.PlotResult(res, plotWidth, plotHeight))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tJOINT\tSAMPLES\tQUANTITIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s[%d]\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Joint,
			run.Coord,
			run.Samples,
			strings.Join(run.Quantities, ","),
		)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		res, err := store.LoadResult(args[0])
		if err != nil {
			return err
		}
		if err := storage.ExportJSONFile(outFile, meta.Model, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	res, err := store.LoadResult(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.ExportCSVFile(outFile, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return storage.ExportCSV(os.Stdout, res)
}

func benchModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	_, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	nv := st.NV()
	h := mat.NewSymDense(nv, nil)
	a := mat.NewDense(6, nv, nil)
	vdot := make([]float64, nv)
	tau := make([]float64, nv)

	// Invalidate before every evaluation so each one pays for kinematics.
	queries := []struct {
		name string
		eval func()
	}{
		{"mass_matrix", func() { dynamics.MassMatrixInto(st, h) }},
		{"inverse_dynamics", func() { dynamics.InverseDynamicsInto(st, vdot, nil, tau) }},
		{"dynamics_bias", func() { dynamics.DynamicsBiasInto(st, nil, tau) }},
		{"momentum_matrix", func() { dynamics.MomentumMatrixInto(st, a) }},
		{"kinetic_energy", func() { dynamics.KineticEnergy(st) }},
	}

	fmt.Printf("benchmarking %s (nq=%d nv=%d)\n\n", cfg.Model, st.NQ(), nv)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUERY\tEVALS\tTIME\tEVALS/SEC")
	for _, q := range queries {
		start := time.Now()
		for i := 0; i < iters; i++ {
			st.Invalidate()
			q.eval()
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n", q.name, iters, elapsed, float64(iters)/elapsed.Seconds())
	}
	return w.Flush()
}

func renderPose(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	_, st, err := buildState(cfg)
	if err != nil {
		return err
	}

	if randPose {
		st.RandConfiguration(rand.New(rand.NewSource(cfg.Seed)))
	}

	if svgPath != "" {
		svg := viz.PoseSVG(st, canvasW, canvasH, svgScale)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Println(viz.NewPoseRenderer(canvasW, canvasH).Render(st))
	return nil
}
