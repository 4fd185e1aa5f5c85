// Package thermal reads hardware temperatures: CPU sensors through the
// lm-sensors binary (with a kernel-sensor fallback via gopsutil) and
// NVIDIA GPU temperatures through nvidia-smi.
//
// Missing binaries are the expected, named ErrToolNotFound condition,
// distinct from a tool that exists but fails to run.
package thermal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jamesainslie/infodump/pkg/infodump/logging"
	"github.com/shirou/gopsutil/v4/sensors"
)

// ErrToolNotFound indicates a required external binary is not installed.
var ErrToolNotFound = errors.New("tool not found")

// commandTimeout bounds every subprocess invocation.
const commandTimeout = 2 * time.Second

// runCommand executes a binary and returns its combined output.
// Overridable in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(cmdCtx, path, args...).CombinedOutput()
	if err != nil {
		if cmdCtx.Err() != nil {
			return nil, cmdCtx.Err()
		}
		return nil, fmt.Errorf("%s: %v: %s", name, err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// SensorReading is one kernel temperature sensor value, used when the
// lm-sensors binary is not installed.
type SensorReading struct {
	Key          string
	TemperatureC float64
}

// CPUTemperatures returns the raw lm-sensors report. When the binary is
// not installed it falls back to kernel sensor readings; ErrToolNotFound
// surfaces only when neither source is available.
func CPUTemperatures(ctx context.Context) (string, error) {
	out, err := runCommand(ctx, "sensors")
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	if !errors.Is(err, ErrToolNotFound) {
		return "", err
	}

	logging.Get("thermal").Debug("lm-sensors missing, falling back to kernel sensors")
	readings, fallbackErr := kernelSensors(ctx)
	if fallbackErr != nil || len(readings) == 0 {
		return "", fmt.Errorf("%w: sensors (lm-sensors)", ErrToolNotFound)
	}

	var sb strings.Builder
	for i, r := range readings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %.1f°C", r.Key, r.TemperatureC)
	}
	return sb.String(), nil
}

// kernelSensors reads temperatures straight from the kernel.
func kernelSensors(ctx context.Context) ([]SensorReading, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	readings := make([]SensorReading, 0, len(temps))
	for _, t := range temps {
		if t.Temperature <= 0 {
			continue
		}
		readings = append(readings, SensorReading{
			Key:          t.SensorKey,
			TemperatureC: t.Temperature,
		})
	}
	return readings, nil
}
