package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/golang/geo/r3"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinesim/internal/backend"
	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/metrics"
	"github.com/san-kum/kinesim/internal/motion"
	"github.com/san-kum/kinesim/internal/pose"
	"github.com/san-kum/kinesim/internal/response"
	"github.com/san-kum/kinesim/internal/sim"
	"github.com/san-kum/kinesim/internal/storage"
	"github.com/san-kum/kinesim/internal/tui"
	"github.com/san-kum/kinesim/pkg/log"
)

var (
	dataDir      string
	logLevel     string
	backendKind  string
	dt           float64
	duration     float64
	displacement float64
	cruiseSpeed  float64
	destSpeed    float64
	vMax         float64
	aMax         float64
	aNom         float64
	dxMin        float64
	configFile   string
	preset       string
	frameRate    int
	requestGUID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinesim",
		Short: "kinematic motion-profile control lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drive an actuator to a goal displacement",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&requestGUID, "request", "", "request guid for the status response")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive with live track visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive scenario editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}
	addScenarioFlags(tuiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "preview the velocity profile without a back-end",
		RunE:  previewProfile,
	}
	addScenarioFlags(profileCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, tuiCmd, presetsCmd, profileCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&backendKind, "backend", config.DefaultBackend, "back-end (modern or classic)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "max duration")
	cmd.Flags().Float64Var(&displacement, "goal", 1.0, "goal displacement")
	cmd.Flags().Float64Var(&cruiseSpeed, "cruise", config.DefaultCruise, "cruise speed")
	cmd.Flags().Float64Var(&destSpeed, "dest-speed", 0.0, "speed at destination")
	cmd.Flags().Float64Var(&vMax, "v-max", 0.2, "max speed")
	cmd.Flags().Float64Var(&aMax, "a-max", 0.1, "max acceleration")
	cmd.Flags().Float64Var(&aNom, "a-nom", 0.08, "nominal deceleration")
	cmd.Flags().Float64Var(&dxMin, "dx-min", 0.01, "arrival tolerance")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// resolveConfig layers preset, config file and CLI flags, in that
// order of increasing precedence, and validates the result.
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

	if cmd.Flags().Changed("backend") {
		cfg.Backend = backendKind
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("goal") {
		cfg.Goal.Displacement = displacement
	}
	if cmd.Flags().Changed("cruise") {
		cfg.Goal.CruiseSpeed = cruiseSpeed
	}
	if cmd.Flags().Changed("dest-speed") {
		cfg.Goal.DestSpeed = destSpeed
	}
	if cmd.Flags().Changed("v-max") {
		cfg.Motion.VMax = vMax
	}
	if cmd.Flags().Changed("a-max") {
		cfg.Motion.AMax = aMax
	}
	if cmd.Flags().Changed("a-nom") {
		cfg.Motion.ANom = aNom
	}
	if cmd.Flags().Changed("dx-min") {
		cfg.Motion.DxMin = dxMin
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupDriver(cfg *config.Config, logger log.Logger) (*sim.Driver, error) {
	world, err := backend.Select(cfg.Backend, logger)
	if err != nil {
		return nil, err
	}
	ref, err := world.Spawn(cfg.Actuator, pose.Identity(), r3.Vector{X: 1})
	if err != nil {
		return nil, err
	}
	return sim.New(world, ref, cfg.Motion, logger), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewLogrusLogger(logLevel)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	driver, err := setupDriver(cfg, logger)
	if err != nil {
		return err
	}
	driver.AddMetric(metrics.NewPeakSpeed())
	driver.AddMetric(metrics.NewCommandEffort())
	driver.AddMetric(metrics.NewOvershoot())
	driver.AddMetric(metrics.NewSettlingTime(cfg.Motion.DxMin))

	goal := sim.Goal{
		Displacement: cfg.Goal.Displacement,
		CruiseSpeed:  cfg.Goal.CruiseSpeed,
		DestSpeed:    cfg.Goal.DestSpeed,
	}
	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, StopWhenSettled: true}

	logger.Infof("driving %s on %s to %+.3f", driver.Ref(), cfg.Backend, goal.Displacement)
	start := time.Now()

	result, err := driver.Run(context.Background(), goal, simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Backend, cfg.Actuator, cfg.Dt, cfg.Duration, goal.Displacement, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Times))
	if result.Settled {
		fmt.Printf("settled at: %.2fs\n", result.SettledAt)
	} else {
		fmt.Println("did not settle within the duration")
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	// Stamp the completion status the transport layer would publish.
	factory, err := response.NewFactory(response.EpochClock(start))
	if err != nil {
		return err
	}
	status := response.StatusCompleted
	if !result.Settled {
		status = response.StatusFailed
	}
	simEnd := 0.0
	if n := len(result.Times); n > 0 {
		simEnd = result.Times[n-1]
	}
	resp := factory.New(status, simEnd, requestGUID, driver.Ref().String())
	fmt.Printf("\nstatus: %d at %s (request %q, source %s)\n",
		resp.Status, resp.Time.Format(time.RFC3339Nano), resp.RequestGUID, resp.SourceGUID)

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
	fmt.Fprintln(w, "ID\tBACKEND\tTIME\tGOAL\tDT\tSETTLED")

	for _, run := range runs {
		settled := "-"
		if run.Settled {
			settled = fmt.Sprintf("%.2fs", run.SettledAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%+.3f\t%.4fs\t%s\n",
			run.ID,
			run.Backend,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Displacement,
			run.Dt,
			settled,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("backend: %s\n", meta.Backend)
	fmt.Printf("samples: %d\n\n", len(trace.Times))

	series := []struct {
		data    []float64
		caption string
	}{
		{trace.Traveled, "traveled displacement"},
		{trace.Velocities, "velocity"},
		{trace.Commands, "commanded velocity"},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
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

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	driver, err := setupDriver(cfg, log.Nop{})
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(cfg.Goal.Displacement, cfg.Motion.VMax, frameRate)
	driver.AddObserver(renderer)

	renderer.Start()
	defer renderer.Stop()

	goal := sim.Goal{
		Displacement: cfg.Goal.Displacement,
		CruiseSpeed:  cfg.Goal.CruiseSpeed,
		DestSpeed:    cfg.Goal.DestSpeed,
	}
	return driver.RunWithCallback(context.Background(), goal,
		sim.Config{Dt: cfg.Dt, Duration: cfg.Duration},
		func(s sim.Sample) bool {
			time.Sleep(time.Duration(cfg.Dt * float64(time.Second)))
			return true
		})
}

// previewProfile runs the controller against pure kinematics, with no
// world behind it, and prints the resulting profile.
func previewProfile(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	x, v := 0.0, 0.0
	goal := cfg.Goal.Displacement

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTRAVELED\tREMAINING\tCOMMAND\tPHASE")

	steps := int(cfg.Duration / cfg.Dt)
	printEvery := steps / 40
	if printEvery < 1 {
		printEvery = 1
	}

	for i := 0; i < steps; i++ {
		remaining := goal - x
		u, err := motion.DesiredVelocity(remaining, v,
			cfg.Goal.CruiseSpeed, cfg.Goal.DestSpeed, cfg.Motion, cfg.Dt)
		if err != nil {
			return err
		}
		phase := motion.DesiredPhase(remaining, v, cfg.Goal.DestSpeed, cfg.Motion)

		if i%printEvery == 0 {
			fmt.Fprintf(w, "%.2f\t%+.4f\t%+.4f\t%+.4f\t%s\n",
				float64(i)*cfg.Dt, x, remaining, u, phase)
		}

		v = u
		x += v * cfg.Dt

		if phase == motion.ArrivedPhase && v == cfg.Goal.DestSpeed {
			fmt.Fprintf(w, "%.2f\t%+.4f\t%+.4f\t%+.4f\t%s\n",
				float64(i)*cfg.Dt, x, goal-x, u, phase)
			break
		}
	}

	return w.Flush()
}
