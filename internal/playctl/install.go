package playctl

import (
	"context"
	"fmt"
	"os/exec"
)

// fnSetupInstall installs the runtime package and enables its service.
// Tied to pacman/systemd; other platforms get a pointer instead of a guess.
func fnSetupInstall() error {
	if !isArchLike() {
		return fmt.Errorf("setup install only supports pacman-based systems; install %s manually and enable %s", runtimePackage, runtimeService)
	}
	if _, err := exec.LookPath(runtimeBinary); err == nil {
		info("%s already installed, skipping package install", runtimeBinary)
	} else {
		info("Installing %s...", runtimePackage)
		if err := runCmdStreaming(context.Background(), "sudo", "pacman", "-S", "--needed", "--noconfirm", runtimePackage); err != nil {
			return fmt.Errorf("pacman install: %w", err)
		}
	}
	info("Enabling %s...", runtimeService)
	// systemctl is short-lived and may want the sudo prompt on the terminal
	if err := runCmdVerbose(context.Background(), "sudo", "systemctl", "enable", "--now", runtimeService); err != nil {
		return fmt.Errorf("enable service: %w", err)
	}
	info("Runtime installed and running. Next: playctl pull <model>")
	return nil
}
