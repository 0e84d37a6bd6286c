package playctl

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"playd/internal/common/fsutil"
	"playd/internal/config"
	"playd/internal/runtime"
)

// doctorCheck is one probe in the setup report.
type doctorCheck struct {
	name     string
	required bool
	run      func(ctx context.Context) (string, error)
}

func doctorChecks(cfg config.Config) []doctorCheck {
	rt := runtime.New(cfg.RuntimeURL)
	return []doctorCheck{
		{
			name:     "runtime binary on PATH",
			required: true,
			run: func(ctx context.Context) (string, error) {
				p, err := exec.LookPath(runtimeBinary)
				if err != nil {
					return "", fmt.Errorf("%s not found; run `playctl setup install`", runtimeBinary)
				}
				return p, nil
			},
		},
		{
			name:     "runtime service active",
			required: false,
			run: func(ctx context.Context) (string, error) {
				out, err := commandOutput(ctx, "systemctl", "is-active", runtimeService)
				if err != nil || out != "active" {
					return "", fmt.Errorf("%s is not active (state=%q)", runtimeService, out)
				}
				return "active", nil
			},
		},
		{
			name:     "runtime API reachable",
			required: true,
			run: func(ctx context.Context) (string, error) {
				v, err := rt.Version(ctx)
				if err != nil {
					return "", err
				}
				return "version " + v, nil
			},
		},
		{
			name:     "data dir writable",
			required: true,
			run: func(ctx context.Context) (string, error) {
				dir, err := fsutil.EnsureDir(cfg.DataDir)
				if err != nil {
					return "", err
				}
				if !fsutil.WritableDir(dir) {
					return "", fmt.Errorf("%s is not writable", dir)
				}
				return dir, nil
			},
		},
		{
			name:     "index present",
			required: false,
			run: func(ctx context.Context) (string, error) {
				path, err := fsutil.ExpandHome(cfg.IndexPath)
				if err != nil {
					return "", err
				}
				if !fsutil.PathExists(path) {
					return "", fmt.Errorf("no index at %s; run `playctl index`", path)
				}
				return path, nil
			},
		},
	}
}

// fnSetupDoctor runs all environment probes and prints a pass/fail report.
// Returns an error if any required check fails.
func fnSetupDoctor(cfg config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	failed := 0
	for _, c := range doctorChecks(cfg) {
		detail, err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("  ok    %-26s %s\n", c.name, detail)
		case c.required:
			failed++
			fmt.Printf("  FAIL  %-26s %v\n", c.name, err)
		default:
			fmt.Printf("  warn  %-26s %v\n", c.name, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("doctor: %d required check(s) failed", failed)
	}
	info("environment looks good")
	return nil
}
