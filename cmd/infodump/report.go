package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jamesainslie/infodump/pkg/infodump/config"
	"github.com/jamesainslie/infodump/pkg/infodump/logging"
	"github.com/jamesainslie/infodump/pkg/infodump/netcheck"
	"github.com/jamesainslie/infodump/pkg/infodump/procs"
	"github.com/jamesainslie/infodump/pkg/infodump/report"
	"github.com/jamesainslie/infodump/pkg/infodump/scanner"
	"github.com/jamesainslie/infodump/pkg/infodump/sysinfo"
	"github.com/jamesainslie/infodump/pkg/infodump/thermal"
	"github.com/jamesainslie/infodump/pkg/infodump/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// runReport executes the full diagnostic report. Section failures are
// rendered inline; the command itself exits zero on normal completion.
func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	initLogging()
	defer func() { _ = logging.Close() }()

	logger := logging.Get("report").With("run", uuid.NewString())
	logger.Info("report started", "path", viper.GetString("path"))

	sink := report.NewSink(cmd.OutOrStdout(), colorEnabled())
	runner := report.NewRunner(sink, buildSections()...)

	failed := runner.Run(ctx)
	logger.Info("report finished", "failed_sections", failed)
	return nil
}

// initLogging loads the logging configuration and starts the file
// logger. Logging problems are not worth failing a diagnostic run; the
// report proceeds with defaults or silently.
func initLogging() {
	lc := logging.DefaultConfig()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default logging config: %v\n", err)
	} else {
		lc = toLoggingConfig(cfg.Logging, viper.GetBool("verbose"))
	}

	if err := logging.Init(lc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
}

// toLoggingConfig maps the file/env logging settings onto the logging
// package's config. Verbose forces debug console echo.
func toLoggingConfig(lc config.LoggingConfig, verbose bool) logging.Config {
	consoleLevel := lc.ConsoleLevel
	if verbose {
		consoleLevel = "debug"
	}
	return logging.Config{
		Level:        lc.Level,
		Path:         lc.Path,
		ConsoleLevel: consoleLevel,
		Rotation: logging.RotationConfig{
			MaxSizeBytes: lc.Rotation.MaxSizeBytes,
			MaxBackups:   lc.Rotation.MaxBackups,
		},
		Components: lc.Components,
	}
}

// colorEnabled decides the sink once at startup: flags and NO_COLOR win,
// then the terminal check.
func colorEnabled() bool {
	if viper.GetBool("no_color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// buildSections assembles the report in its fixed order.
func buildSections() []report.Section {
	scanPath := viper.GetString("path")
	largest := viper.GetInt("largest")
	topCPU := viper.GetInt("cpu")

	sections := []report.Section{
		{Title: "SYSTEM INFO", Run: systemInfoSection},
		{Title: "NETWORK", Run: networkSection(viper.GetString("ping_target"))},
		{Title: "MEMORY", Run: memorySection},
		{Title: "DISK USAGE", Run: diskSection},
		{
			Title: fmt.Sprintf("%d LARGEST FILES in %s", largest, scanPath),
			Run:   largestFilesSection(scanPath, largest, viper.GetStringSlice("exclude")),
		},
		{
			Title: fmt.Sprintf("TOP %d CPU PROCESSES", topCPU),
			Run:   topCPUSection(topCPU),
		},
	}

	if !viper.GetBool("no_temp") {
		sections = append(sections, report.Section{
			Title: "SYSTEM TEMPERATURES",
			Run:   temperatureSection,
		})
	}
	if !viper.GetBool("no_nvidia") {
		sections = append(sections, report.Section{
			Title: "NVIDIA GPU",
			Run:   nvidiaSection,
		})
	}

	return sections
}

func systemInfoSection(ctx context.Context, sink report.Sink) error {
	id := sysinfo.CollectIdentity(ctx)

	report.Linef(sink, report.StyleNone, "Current Directory: %s", id.WorkingDir)
	report.Linef(sink, report.StyleNone, "Username: %s", id.Username)
	report.Linef(sink, report.StyleNone, "Hostname: %s", id.Hostname)
	report.Linef(sink, report.StyleNone, "Kernel: %s", id.Kernel)
	report.Linef(sink, report.StyleNone, "OS: %s", id.OS)
	report.Linef(sink, report.StyleNone, "Language: %s", id.Lang)
	report.Linef(sink, report.StyleNone, "Time: %s", id.Time.Format("2006-01-02 15:04:05"))
	return nil
}

func networkSection(target string) func(context.Context, report.Sink) error {
	return func(ctx context.Context, sink report.Sink) error {
		checker := &netcheck.Checker{Target: target}
		if ok, err := checker.Ping(ctx); ok {
			sink.Line("Outbound connection successful.", report.StyleSuccess)
		} else {
			logging.Get("report").Debug("ping failed", "target", target, "error", err)
			sink.Line("Outbound connection FAILED.", report.StyleError)
		}

		ifaces, err := sysinfo.CollectInterfaces(ctx)
		if err != nil {
			return err
		}

		sink.Line("", report.StyleNone)
		sink.Line("Interfaces:", report.StyleNone)
		for _, name := range ifaces {
			report.Linef(sink, report.StyleNone, " - %s", name)
		}
		return nil
	}
}

func memorySection(ctx context.Context, sink report.Sink) error {
	stats, err := sysinfo.CollectMemory(ctx)
	if err != nil {
		return err
	}

	report.Linef(sink, report.StyleNone, "Total: %.2f GB", gb(stats.TotalBytes))
	report.Linef(sink, report.StyleNone, "Available: %.2f GB", gb(stats.AvailableBytes))
	report.Linef(sink, report.StyleNone, "Used: %.2f GB (%.1f%%)", gb(stats.UsedBytes), stats.UsedPercent)
	return nil
}

func diskSection(ctx context.Context, sink report.Sink) error {
	parts, err := sysinfo.CollectDisks(ctx)
	if err != nil {
		return err
	}

	for _, p := range parts {
		if p.Err != "" {
			report.Linef(sink, report.StyleWarning, "%s (%s): %s", p.Device, p.Mountpoint, p.Err)
			continue
		}
		report.Linef(sink, report.StyleNone, "%s (%s): %.1f%% used", p.Device, p.Mountpoint, p.UsedPercent)
	}
	return nil
}

func largestFilesSection(path string, limit int, exclude []string) func(context.Context, report.Sink) error {
	return func(ctx context.Context, sink report.Sink) error {
		s := scanner.New(scanner.Options{
			Root:    path,
			Limit:   limit,
			Exclude: exclude,
		})

		result, err := s.Scan(ctx)
		if err != nil {
			return err
		}

		if len(result.Files) == 0 {
			sink.Line("No files found.", report.StyleMuted)
		}
		for _, f := range result.Files {
			report.Linef(sink, report.StyleNone, "%s - %s", f.HumanSize(), f.Path)
		}

		report.Linef(sink, report.StyleMuted, "Scanned %d files (%s) in %s",
			result.FilesScanned, types.FormatCount(result.TotalSize), result.Elapsed.Round(time.Millisecond))
		return nil
	}
}

func topCPUSection(limit int) func(context.Context, report.Sink) error {
	return func(ctx context.Context, sink report.Sink) error {
		ranker := procs.New()
		entries, err := ranker.TopCPU(ctx, limit)
		if err != nil {
			return err
		}

		for _, e := range entries {
			report.Linef(sink, report.StyleNone, "%d - %s (%.1f%% CPU)", e.PID, e.Name, e.CPUPercent)
		}
		return nil
	}
}

func temperatureSection(ctx context.Context, sink report.Sink) error {
	out, err := thermal.CPUTemperatures(ctx)
	if err != nil {
		if errors.Is(err, thermal.ErrToolNotFound) {
			sink.Line("sensors command not found. Please install lm-sensors.", report.StyleWarning)
			return nil
		}
		return err
	}

	for _, line := range strings.Split(out, "\n") {
		sink.Line(line, report.StyleNone)
	}
	return nil
}

func nvidiaSection(ctx context.Context, sink report.Sink) error {
	temps, err := thermal.NvidiaTemperatures(ctx)
	if err != nil {
		if errors.Is(err, thermal.ErrToolNotFound) {
			sink.Line("nvidia-smi not found. Nvidia drivers may not be installed.", report.StyleWarning)
			return nil
		}
		return err
	}

	if len(temps) == 0 {
		sink.Line("No Nvidia GPU detected.", report.StyleMuted)
		return nil
	}
	for _, t := range temps {
		report.Linef(sink, report.StyleNone, "GPU %d: %.0f°C", t.Index, t.TemperatureC)
	}
	return nil
}

// gb converts bytes to gigabytes for the memory section.
func gb(bytes uint64) float64 {
	return float64(bytes) / float64(types.GiB)
}
