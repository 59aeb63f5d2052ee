package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/dynamo"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/export"
	"github.com/san-kum/odelab/internal/integrators"
	"github.com/san-kum/odelab/internal/physics"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	thetaDeg   float64
	omega      float64
	y0         float64
	pos        float64
	vel        float64
	methodName string
	tolerance  float64
	mass       float64
	length     float64
	damping    float64
	gravity    float64
	lambda     float64
	configFile string
	preset     string
	svgPath    string
	halvings   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "fixed-step ODE integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare [system]",
		Short: "run every method at the same step and compare against the rkf45 reference",
		Args:  cobra.ExactArgs(1),
		RunE:  compareMethods,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().Float64Var(&tolerance, "tol", 1e-8, "rkf45 reference tolerance")

	orderCmd := &cobra.Command{
		Use:   "order [system]",
		Short: "measure the observed order of accuracy by step halving",
		Args:  cobra.ExactArgs(1),
		RunE:  measureOrder,
	}
	addSimFlags(orderCmd)
	orderCmd.Flags().IntVar(&halvings, "halvings", 3, "number of step halvings")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json, optionally the trajectory as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "write trajectory svg to path")

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "integrate with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, compareCmd, orderCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&thetaDeg, "theta", config.DefaultThetaDeg, "initial angle in degrees (pendulum)")
	cmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity (pendulum)")
	cmd.Flags().Float64Var(&y0, "y0", config.DefaultY, "initial value (decay)")
	cmd.Flags().Float64Var(&pos, "pos", 1.0, "initial position (oscillator)")
	cmd.Flags().Float64Var(&vel, "vel", 0.0, "initial velocity (oscillator)")
	cmd.Flags().StringVar(&methodName, "method", "rk4", "integration method (euler, rk2, rk4, rkf45)")
	cmd.Flags().Float64Var(&mass, "mass", 1.0, "pendulum mass")
	cmd.Flags().Float64Var(&length, "length", 1.0, "pendulum length")
	cmd.Flags().Float64Var(&damping, "damping", 0.0, "pendulum damping")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.81, "gravitational acceleration")
	cmd.Flags().Float64Var(&lambda, "lambda", config.DefaultLambda, "decay rate (decay)")
}

// applyConfig folds preset and config-file values into the flag variables.
// CLI flags take precedence over the config file, the config file over the
// preset.
func applyConfig(cmd *cobra.Command, system string) error {
	if preset != "" {
		cfg := config.GetPreset(system, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(system))
		}
		dt = cfg.Dt
		duration = cfg.Duration
		methodName = cfg.Method
		thetaDeg = cfg.InitState.ThetaDeg
		omega = cfg.InitState.Omega
		if cfg.InitState.Y != 0 {
			y0 = cfg.InitState.Y
		}
		pos = cfg.InitState.Pos
		vel = cfg.InitState.Vel
	}

	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("method") {
		methodName = cfg.Method
	}
	if !cmd.Flags().Changed("theta") {
		thetaDeg = cfg.InitState.ThetaDeg
	}
	if !cmd.Flags().Changed("omega") {
		omega = cfg.InitState.Omega
	}
	if !cmd.Flags().Changed("y0") && cfg.InitState.Y != 0 {
		y0 = cfg.InitState.Y
	}
	if !cmd.Flags().Changed("pos") {
		pos = cfg.InitState.Pos
	}
	if !cmd.Flags().Changed("vel") {
		vel = cfg.InitState.Vel
	}
	return nil
}

// buildSystem looks up the named system and applies parameter flags.
func buildSystem(name string) (dynamo.System, error) {
	registry := experiment.NewRegistry()
	sys, err := registry.GetSystem(name)
	if err != nil {
		return nil, err
	}

	if c, ok := sys.(dynamo.Configurable); ok {
		params := map[string]float64{}
		switch name {
		case "pendulum":
			params["mass"] = mass
			params["length"] = length
			params["damping"] = damping
			params["gravity"] = gravity
		case "decay":
			params["lambda"] = lambda
		}
		for k, v := range params {
			if err := c.SetParam(k, v); err != nil {
				return nil, err
			}
		}
	}

	return sys, nil
}

func buildInitState(name string, sys dynamo.System) dynamo.State {
	switch name {
	case "decay":
		return dynamo.State{y0}
	case "oscillator":
		return dynamo.State{pos, vel}
	default:
		p := sys.(*physics.Pendulum)
		x0 := p.InitialState(thetaDeg)
		x0[1] = omega
		return x0
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	system := args[0]

	if err := applyConfig(cmd, system); err != nil {
		return err
	}

	method, err := integrators.ParseMethod(methodName)
	if err != nil {
		return err
	}

	sys, err := buildSystem(system)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	cfg := experiment.Config{
		System:    system,
		Method:    method,
		InitState: buildInitState(system, sys),
		Dt:        dt,
		Duration:  duration,
		Adaptive:  method == integrators.MethodRKF45,
		Tolerance: tolerance,
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(sys, registry.DefaultMetrics(sys)); err != nil {
		return err
	}

	fmt.Printf("integrating %s with %s...\n", system, method)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(system, method.String(), dt, duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("samples: %d\n", len(result.Times))
	if result.EnergyDrift > 0 {
		fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)
	}
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	system := args[0]

	sys, err := buildSystem(system)
	if err != nil {
		return err
	}
	x0 := buildInitState(system, sys)

	cfg := dynamo.Config{Dt: dt, Duration: duration, ValidateState: true}

	fixed := integrators.FixedStepMethods()
	steppers := make([]dynamo.Stepper, len(fixed))
	for i, m := range fixed {
		steppers[i] = integrators.NewStepper(m)
	}

	results, err := dynamo.RunAll(context.Background(), sys, steppers, x0, cfg)
	if err != nil {
		return err
	}

	refCfg := cfg
	refCfg.Adaptive = true
	refCfg.Tolerance = tolerance
	refCfg.MinDt = 1e-10
	refCfg.MaxDt = dt
	refSim := dynamo.New(sys, integrators.NewRKF45())
	reference, err := refSim.Run(context.Background(), x0, refCfg)
	if err != nil {
		return err
	}
	refFinal := reference.Final()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSAMPLES\tFINAL x0\tERR vs RKF45\tENERGY DRIFT")
	for i, m := range fixed {
		r := results[i]
		fmt.Fprintf(w, "%s\t%d\t%+.6f\t%.3e\t%.3e\n",
			m, len(r.Times), r.Final()[0], r.Final().Sub(refFinal).Norm(), r.EnergyDrift)
	}
	fmt.Fprintf(w, "rkf45 (ref)\t%d\t%+.6f\t-\t%.3e\n", len(reference.Times), refFinal[0], reference.EnergyDrift)
	if err := w.Flush(); err != nil {
		return err
	}

	series := make([][]float64, 0, len(results))
	for _, r := range results {
		series = append(series, r.Component(0))
	}
	fmt.Println()
	fmt.Println(viz.Overlay(series, "x0 vs time (euler, rk2, rk4)", 80, 15))

	return nil
}

func measureOrder(cmd *cobra.Command, args []string) error {
	system := args[0]

	// short horizon and coarse base step keep the finest errors well above
	// machine precision
	if !cmd.Flags().Changed("dt") {
		dt = 0.1
	}
	if !cmd.Flags().Changed("time") {
		duration = 1.0
	}

	sys, err := buildSystem(system)
	if err != nil {
		return err
	}

	var exact func(t float64) dynamo.State
	var x0 dynamo.State
	switch s := sys.(type) {
	case *physics.Decay:
		x0 = dynamo.State{y0}
		exact = func(t float64) dynamo.State { return dynamo.State{s.Exact(y0, t)} }
	case *physics.Oscillator:
		x0 = dynamo.State{pos, 0}
		exact = func(t float64) dynamo.State {
			return dynamo.State{s.Exact(pos, t), -pos * s.Omega0 * math.Sin(s.Omega0*t)}
		}
	default:
		return fmt.Errorf("system %q has no closed-form solution; use decay or oscillator", system)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tOBSERVED ORDER\tTHEORETICAL")
	for _, m := range integrators.FixedStepMethods() {
		_, order, err := analysis.ObservedOrder(context.Background(), sys, m, x0, dt, duration, exact, halvings)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.3f\t%d\n", m, order, m.Order())
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tDURATION\tDT\tMETHOD\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Method,
			run.Steps,
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

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("samples: %d (t = %.2f .. %.2f)\n\n", len(states), times[0], times[len(times)-1])

	for varIdx := range states[0] {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}

		caption := fmt.Sprintf("x%d vs time", varIdx)
		if meta.System == "pendulum" {
			if varIdx == 0 {
				caption = "theta (angle)"
			} else {
				caption = "omega (angular velocity)"
			}
		}

		fmt.Println(viz.TimeSeries(data, caption, 80, 10))
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if svgPath != "" {
		times, states, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		if len(states) == 0 {
			return fmt.Errorf("no trajectory to export")
		}
		series := make([]float64, len(states))
		for i := range states {
			series[i] = states[i][0]
		}
		svg := export.TrajectoryToSVG(times, series, 800, 400, "#00ff88")
		if err := os.WriteFile(filepath.Clean(svgPath), []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	system := args[0]

	sys, err := buildSystem(system)
	if err != nil {
		return err
	}

	method, err := integrators.ParseMethod(methodName)
	if err != nil {
		return err
	}

	return viz.RunLive(sys, integrators.NewStepper(method), buildInitState(system, sys), dt, duration, system)
}

func listPresets(cmd *cobra.Command, args []string) error {
	systems := []string{"pendulum", "decay", "oscillator"}
	if len(args) == 1 {
		systems = args[:1]
	}

	for _, system := range systems {
		names := config.ListPresets(system)
		if names == nil {
			return fmt.Errorf("no presets for system %q", system)
		}
		fmt.Printf("%s:\n", system)
		for _, name := range names {
			cfg := config.GetPreset(system, name)
			fmt.Printf("  %-10s method=%s dt=%.3f time=%.1f\n", name, cfg.Method, cfg.Dt, cfg.Duration)
		}
	}

	return nil
}
