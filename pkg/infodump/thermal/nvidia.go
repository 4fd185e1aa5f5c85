package thermal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// GPUTemperature is one NVIDIA GPU temperature reading, in device
// enumeration order.
type GPUTemperature struct {
	Index        int
	TemperatureC float64
}

// NvidiaTemperatures queries nvidia-smi for per-GPU temperatures.
// It returns (nil, nil) when the driver reports no GPUs, and
// ErrToolNotFound when nvidia-smi is not installed.
func NvidiaTemperatures(ctx context.Context) ([]GPUTemperature, error) {
	list, err := runCommand(ctx, "nvidia-smi", "-L")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(list)) == "" {
		return nil, nil
	}

	out, err := runCommand(ctx, "nvidia-smi",
		"--query-gpu=temperature.gpu", "--format=csv,noheader,nounits")
	if err != nil {
		return nil, err
	}

	return parseGPUTemperatures(string(out))
}

// parseGPUTemperatures parses nvidia-smi csv,noheader,nounits output:
// one temperature per line, blank lines tolerated.
func parseGPUTemperatures(out string) ([]GPUTemperature, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	temps := make([]GPUTemperature, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		temp, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected nvidia-smi output %q: %w", line, err)
		}
		temps = append(temps, GPUTemperature{
			Index:        len(temps),
			TemperatureC: temp,
		})
	}
	return temps, nil
}
