package playctl

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"playd/internal/config"
	"playd/internal/runtime"
)

// fnPull streams a model pull from the runtime, printing progress.
func fnPull(cfg config.Config, name string) error {
	info("Pulling %s from %s", name, cfg.RuntimeURL)
	rt := runtime.New(cfg.RuntimeURL)
	lastStatus := ""
	err := rt.Pull(context.Background(), name, func(p runtime.PullProgress) error {
		if p.Total > 0 {
			fmt.Printf("\r%-28s %3d%%", p.Status, p.Completed*100/p.Total)
			lastStatus = p.Status
			return nil
		}
		if p.Status != lastStatus {
			if lastStatus != "" {
				fmt.Println()
			}
			fmt.Print(p.Status)
			lastStatus = p.Status
		}
		return nil
	})
	fmt.Println()
	if err != nil {
		return err
	}
	info("Pulled %s", name)
	return nil
}

// fnModels prints the runtime's installed models as a table.
func fnModels(cfg config.Config) error {
	rt := runtime.New(cfg.RuntimeURL)
	models, err := rt.Tags(context.Background())
	if err != nil {
		return err
	}
	if len(models) == 0 {
		info("no models installed; try `playctl pull %s`", config.DefaultChatModel)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
	for _, m := range models {
		modified := ""
		if !m.ModifiedAt.IsZero() {
			modified = m.ModifiedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, humanSize(m.Size), modified)
	}
	return w.Flush()
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
