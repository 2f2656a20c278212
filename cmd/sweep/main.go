// Command sweep runs a mixing-strength (beta) sweep against a fresh swarm
// at each grid point and reports the resulting order parameter and
// susceptibility, locating the phase transition.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/loopfield-labs/efeswarm/config"
	"github.com/loopfield-labs/efeswarm/phase"
)

// sweepLogRow implements slog.LogValuer so each beta's result is logged as
// one structured group instead of loose top-level attributes.
type sweepLogRow phase.SweepSample

func (r sweepLogRow) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("beta", r.Beta),
		slog.Float64("phi", r.Phi),
		slog.Float64("chi", r.Chi),
	)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	betasFlag := flag.String("betas", "0.05,0.1,0.15,0.2,0.25,0.3,0.35,0.4", "Comma-separated beta grid")
	n := flag.Int("n", 0, "Agent count (0 = use config default)")
	k := flag.Int("k", 0, "Target neighbor count (0 = use config default)")
	warmup := flag.Int("warmup", 0, "Warmup steps before sampling (0 = use config default)")
	measure := flag.Int("measure", 0, "Measurement steps sampled per beta (0 = use config default)")
	seed := flag.Int64("seed", 1, "Seed for initial haze/saliency sampling")
	outputDir := flag.String("output-dir", "", "Directory for sweep.csv and config.yaml snapshot (empty = current directory)")
	chartPath := flag.String("chart", "", "Optional path to render a beta-vs-phi/chi PNG chart")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	betas, err := parseBetas(*betasFlag)
	if err != nil {
		slog.Error("invalid betas flag", "error", err)
		os.Exit(1)
	}

	sweepCfg := phase.SweepConfig{
		Betas:            betas,
		N:                orDefault(*n, cfg.Swarm.N),
		K:                orDefault(*k, cfg.Swarm.K),
		DT:               cfg.Physics.DT,
		WarmupSteps:      orDefault(*warmup, cfg.Sweep.WarmupSteps),
		MeasurementSteps: orDefault(*measure, cfg.Sweep.MeasurementSteps),
		Seed:             *seed,
	}

	slog.Info("starting beta sweep",
		"betas", len(betas),
		"n", sweepCfg.N,
		"k", sweepCfg.K,
		"warmup_steps", sweepCfg.WarmupSteps,
		"measurement_steps", sweepCfg.MeasurementSteps,
	)

	samples, err := phase.RunSweep(sweepCfg)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	for _, s := range samples {
		slog.Info("beta sample", "result", sweepLogRow(s))
	}

	betaC, err := phase.FindBetaC(betas, phisOf(samples))
	if err != nil {
		slog.Warn("could not locate critical beta", "error", err)
	} else {
		slog.Info("critical beta located", "beta_c", betaC)
	}

	dir := *outputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	csvPath := filepath.Join(dir, "sweep.csv")
	if ok, err := phase.ExportCSV(csvPath, betas, phisOf(samples), chisOf(samples)); !ok {
		slog.Error("failed to export csv", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote sweep csv", "path", csvPath)

	configSnapshotPath := filepath.Join(dir, "config.yaml")
	if err := cfg.WriteYAML(configSnapshotPath); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}
	slog.Info("wrote config snapshot", "path", configSnapshotPath)

	if *chartPath != "" {
		if err := renderChart(*chartPath, samples); err != nil {
			slog.Error("failed to render chart", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote chart", "path", *chartPath)
	}
}

func parseBetas(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	betas := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		betas = append(betas, v)
	}
	return betas, nil
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func phisOf(samples []phase.SweepSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Phi
	}
	return out
}

func chisOf(samples []phase.SweepSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Chi
	}
	return out
}
