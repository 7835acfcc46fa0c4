package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/latentwalk/internal/analysis"
	"github.com/san-kum/latentwalk/internal/chart"
	"github.com/san-kum/latentwalk/internal/config"
	"github.com/san-kum/latentwalk/internal/latent"
	"github.com/san-kum/latentwalk/internal/prompt"
	"github.com/san-kum/latentwalk/internal/sampler"
	"github.com/san-kum/latentwalk/internal/storage"
	"github.com/san-kum/latentwalk/internal/tui"
	"github.com/san-kum/latentwalk/internal/vis"
)

var (
	dataDir    string
	configFile string
	preset     string

	seed       uint64
	seedMode   string
	latentMode string
	imageLimit int
	modLimit   float64

	promptsFile   string
	modifiersFile string
	modifier      float64
	frames        int
	embedDim      int

	backend    string
	backendURL string
	timeoutSec int
	modelName  string
	steps      int
	cfgScale   float64
	samplerNm  string
	scheduler  string
	denoise    float64

	chartPNG string
	chartSVG string
	every    int
	noSave   bool

	chartOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "latentwalk",
		Short: "audio-reactive latent trajectory generator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".latentwalk", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a visualization",
		RunE:  runVisualization,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&chartPNG, "chart", "", "write trajectory chart PNG to path")
	runCmd.Flags().StringVar(&chartSVG, "svg", "", "write trajectory chart SVG to path")
	runCmd.Flags().IntVar(&every, "every", 1, "print progress every n frames")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a visualization with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render a run's trajectory and modifiers as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&chartOut, "out", "", "output path (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run telemetry to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run telemetry to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list run presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark latent modes against the offline backend",
		RunE:  benchModes,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 128, "frames per mode")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, chartCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "starting seed")
	cmd.Flags().StringVar(&seedMode, "seed-mode", "fixed", "seed mode (fixed|random|increase|decrease)")
	cmd.Flags().StringVar(&latentMode, "latent-mode", "bounce", "latent mode (static|increase|decrease|flow|gauss|bounce)")
	cmd.Flags().IntVar(&imageLimit, "image-limit", -1, "cap produced frames (<=0 unlimited)")
	cmd.Flags().Float64Var(&modLimit, "mod-limit", 5.0, "latent mean bound (<=0 unbounded)")
	cmd.Flags().StringVar(&promptsFile, "prompts", "", "prompt sequence file (yaml|json)")
	cmd.Flags().StringVar(&modifiersFile, "modifiers", "", "modifier sequence file (yaml|json)")
	cmd.Flags().Float64Var(&modifier, "modifier", 1.0, "constant modifier when no file is given")
	cmd.Flags().IntVar(&frames, "frames", 32, "frame count for generated prompts")
	cmd.Flags().IntVar(&embedDim, "embed-dim", 16, "embedding width for generated prompts")
	cmd.Flags().StringVar(&backend, "backend", "", "sampler backend (offline|remote|auto)")
	cmd.Flags().StringVar(&backendURL, "url", "", "remote backend url")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "remote backend timeout seconds")
	cmd.Flags().StringVar(&modelName, "model", "", "model name passed to the sampler")
	cmd.Flags().IntVar(&steps, "steps", 0, "sampling steps")
	cmd.Flags().Float64Var(&cfgScale, "cfg", 0, "cfg scale")
	cmd.Flags().StringVar(&samplerNm, "sampler", "", "sampler name")
	cmd.Flags().StringVar(&scheduler, "scheduler", "", "scheduler name")
	cmd.Flags().Float64Var(&denoise, "denoise", 0, "denoise strength")
}

// buildConfig resolves preset, config file, and flags in that order;
// flags win when explicitly set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
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

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("seed-mode") {
		cfg.SeedMode = seedMode
	}
	if flags.Changed("latent-mode") {
		cfg.LatentMode = latentMode
	}
	if flags.Changed("image-limit") {
		cfg.ImageLimit = imageLimit
	}
	if flags.Changed("mod-limit") {
		cfg.ModLimit = modLimit
	}
	if flags.Changed("prompts") {
		cfg.PromptsFile = promptsFile
	}
	if flags.Changed("modifiers") {
		cfg.ModifiersFile = modifiersFile
	}
	if flags.Changed("backend") {
		cfg.Sampler.Backend = backend
	}
	if flags.Changed("url") {
		cfg.Sampler.URL = backendURL
	}
	if flags.Changed("timeout") {
		cfg.Sampler.TimeoutSec = timeoutSec
	}
	if flags.Changed("model") {
		cfg.Sampler.Model = modelName
	}
	if flags.Changed("steps") {
		cfg.Sampler.Steps = steps
	}
	if flags.Changed("cfg") {
		cfg.Sampler.CFG = cfgScale
	}
	if flags.Changed("sampler") {
		cfg.Sampler.Name = samplerNm
	}
	if flags.Changed("scheduler") {
		cfg.Sampler.Scheduler = scheduler
	}
	if flags.Changed("denoise") {
		cfg.Sampler.Denoise = denoise
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRun turns the file config into the orchestrator inputs. Prompts
// and modifiers come from files when configured and are generated
// otherwise.
func buildRun(cfg *config.Config) (vis.Config, error) {
	lm, err := latent.ParseMode(cfg.LatentMode)
	if err != nil {
		return vis.Config{}, err
	}
	sm, err := latent.ParseSeedMode(cfg.SeedMode)
	if err != nil {
		return vis.Config{}, err
	}

	var prompts prompt.Sequence
	if cfg.PromptsFile != "" {
		prompts, err = prompt.LoadSequence(cfg.PromptsFile)
		if err != nil {
			return vis.Config{}, err
		}
	} else {
		rng := rand.New(rand.NewSource(int64(cfg.Seed)))
		prompts = prompt.Random(rng, frames, embedDim)
	}

	var modifiers []float64
	if len(cfg.Modifiers) > 0 || cfg.ModifiersFile != "" {
		modifiers, err = cfg.ResolveModifiers()
		if err != nil {
			return vis.Config{}, err
		}
	} else {
		modifiers = make([]float64, prompts.DesiredFrames())
		for i := range modifiers {
			modifiers[i] = modifier
		}
	}

	return vis.Config{
		Prompts:    prompts,
		Modifiers:  modifiers,
		Start:      cfg.StartLatent(),
		Seed:       cfg.Seed,
		SeedMode:   sm,
		LatentMode: lm,
		ImageLimit: cfg.ImageLimit,
		ModLimit:   cfg.ModLimit,
		Sampler: sampler.Settings{
			Model:       cfg.Sampler.Model,
			Steps:       cfg.Sampler.Steps,
			CFG:         cfg.Sampler.CFG,
			SamplerName: cfg.Sampler.Name,
			Scheduler:   cfg.Sampler.Scheduler,
			Denoise:     cfg.Sampler.Denoise,
		},
	}, nil
}

func buildSampler(ctx context.Context, cfg *config.Config) (sampler.Sampler, error) {
	return sampler.NewRegistry().Get(ctx, cfg.Sampler.Backend, sampler.Options{
		URL:     cfg.Sampler.URL,
		Timeout: time.Duration(cfg.Sampler.TimeoutSec) * time.Second,
	})
}

func saveRun(cfg *config.Config, backendName string, result *vis.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(storage.RunMetadata{
		LatentMode:  cfg.LatentMode,
		SeedMode:    cfg.SeedMode,
		Seed:        cfg.Seed,
		ModLimit:    cfg.ModLimit,
		ImageLimit:  cfg.ImageLimit,
		Backend:     backendName,
		Model:       cfg.Sampler.Model,
		SamplerName: cfg.Sampler.Name,
		Scheduler:   cfg.Sampler.Scheduler,
		Steps:       cfg.Sampler.Steps,
		CFG:         cfg.Sampler.CFG,
		Denoise:     cfg.Sampler.Denoise,
	}, result)
}

func printSummary(result *vis.Result, elapsed time.Duration) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("output shape: %v\n", result.Latents.Shape)
	fmt.Printf("clamped frames: %d\n", result.Clamped)
	fmt.Printf("bounce flips: %d\n", result.Flips)
}

func writeCharts(result *vis.Result, cfg *config.Config) error {
	if chartPNG != "" {
		f, err := os.Create(chartPNG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := chart.EncodePNG(f, result.Chart); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", chartPNG)
	}

	if chartSVG != "" {
		svg, err := chart.New().SVG(
			map[string][]float64{
				"Latent Means": result.Trajectory,
				"Modifiers":    result.Modifiers,
			},
			map[string]string{
				"latent_mode": cfg.LatentMode,
				"seed_mode":   cfg.SeedMode,
				"mod_limit":   strconv.FormatFloat(cfg.ModLimit, 'f', 2, 64),
				"frames":      strconv.Itoa(result.Frames),
			})
		if err != nil {
			return err
		}
		if err := os.WriteFile(chartSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", chartSVG)
	}
	return nil
}

func runVisualization(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	runCfg, err := buildRun(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := buildSampler(ctx, cfg)
	if err != nil {
		return err
	}

	v := vis.New(backend, chart.New())

	total := runCfg.DesiredFrames()
	if runCfg.ImageLimit > 0 && runCfg.ImageLimit < total {
		total = runCfg.ImageLimit
	}
	v.AddObserver(&vis.ProgressObserver{W: os.Stdout, Total: total, Every: every})

	fmt.Printf("running %s visualization on %s backend...\n", cfg.LatentMode, backend.Name())
	start := time.Now()

	result, err := v.Run(ctx, runCfg)
	if err != nil {
		return err
	}

	printSummary(result, time.Since(start))

	if !noSave {
		runID, err := saveRun(cfg, backend.Name(), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return writeCharts(result, cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	runCfg, err := buildRun(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := buildSampler(ctx, cfg)
	if err != nil {
		return err
	}

	m := tui.New(ctx, vis.New(backend, chart.New()), runCfg)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return err
	}
	if m.Err() != nil {
		return m.Err()
	}

	result := m.Result()
	if result == nil {
		fmt.Println("run cancelled")
		return nil
	}

	if !noSave {
		runID, err := saveRun(cfg, backend.Name(), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
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
	fmt.Fprintln(w, "ID\tTIME\tMODE\tSEED MODE\tFRAMES\tBACKEND\tCLAMPED\tFLIPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.LatentMode,
			run.SeedMode,
			run.Frames,
			run.Backend,
			run.Clamped,
			run.Flips,
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
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Means) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s, seed mode: %s\n", meta.LatentMode, meta.SeedMode)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	fmt.Println(chart.Plot(traj.Means, "latent means", 80, 10))
	fmt.Println()
	fmt.Println(chart.Plot(traj.Modifiers, "modifiers", 80, 10))

	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Means) == 0 {
		return fmt.Errorf("no data to chart")
	}

	svg, err := chart.New().SVG(
		map[string][]float64{
			"Latent Means": traj.Means,
			"Modifiers":    traj.Modifiers,
		},
		map[string]string{
			"run":         meta.ID,
			"latent_mode": meta.LatentMode,
			"seed_mode":   meta.SeedMode,
			"mod_limit":   strconv.FormatFloat(meta.ModLimit, 'f', 2, 64),
			"frames":      strconv.Itoa(meta.Frames),
		})
	if err != nil {
		return err
	}

	if chartOut == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(chartOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("chart: %s\n", chartOut)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Means) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s\n\n", meta.LatentMode)

	ps := analysis.PowerSpectrum(traj.Means)
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4*3]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (latent means)"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, share := analysis.DominantPeriod(traj.Means)
	if period == 0 {
		fmt.Println("no dominant oscillation")
		return nil
	}
	fmt.Printf("dominant period: %.1f frames (%.0f%% of spectral power)\n", period, share*100)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, traj)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLATENT MODE\tSEED MODE\tMOD LIMIT\tBACKEND")

	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\n",
			name, p.LatentMode, p.SeedMode, p.ModLimit, p.Sampler.Backend)
	}

	return w.Flush()
}

func benchModes(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(42))
	prompts := prompt.Random(rng, frames, 16)
	modifiers := make([]float64, frames)
	for i := range modifiers {
		modifiers[i] = 1.0
	}

	fmt.Printf("benchmarking latent modes (%d frames, offline backend)\n\n", frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tFRAMES\tTIME\tFRAMES/SEC")

	for _, name := range latent.Modes() {
		mode, err := latent.ParseMode(name)
		if err != nil {
			return err
		}

		runCfg := vis.Config{
			Prompts:    prompts,
			Modifiers:  modifiers,
			Start:      latent.New(1, 4, 64, 64),
			Seed:       42,
			SeedMode:   latent.SeedIncrease,
			LatentMode: mode,
			ModLimit:   5.0,
			Sampler: sampler.Settings{
				Model: "bench", Steps: 20, CFG: 8.0,
				SamplerName: "euler", Scheduler: "normal", Denoise: 1.0,
			},
		}

		v := vis.New(sampler.NewOffline(), chart.New())
		start := time.Now()
		result, err := v.Run(context.Background(), runCfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n",
			name, result.Frames, elapsed.Round(time.Millisecond),
			float64(result.Frames)/elapsed.Seconds())
	}

	return w.Flush()
}
