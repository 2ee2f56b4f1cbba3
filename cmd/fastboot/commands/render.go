package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/ui/output"
	"go.trai.ch/fastboot/internal/ui/style"
	"go.trai.ch/zerr"
)

type report struct {
	domain.Stats
	Probes domain.Probes `json:"probes"`
}

// render prints stats and probes as aligned rows, or as one JSON object in
// JSON mode.
func (c *CLI) render(w io.Writer, stats domain.Stats, probes domain.Probes) error {
	if c.settings.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report{Stats: stats, Probes: probes}); err != nil {
			return zerr.Wrap(err, "failed to encode stats")
		}
		return nil
	}

	out := output.New(w)
	versionTag := stats.VersionTag
	if versionTag == "" {
		versionTag = "(none)"
	}

	rows := []struct {
		label string
		value string
	}{
		{"cache hit", fmt.Sprint(stats.CacheHit)},
		{"cache miss", fmt.Sprint(stats.CacheMiss)},
		{"not cached", fmt.Sprint(stats.NotCached)},
		{"version tag", versionTag},
		{"entries", fmt.Sprint(stats.Entries)},
		{"cache file", stats.Loading.CacheFile},
		{"startup file", stats.Loading.StartupFile},
		{"probes", fmt.Sprintf("exists=%d stat=%d readFile=%d writeFile=%d",
			probes.Exists, probes.Stat, probes.ReadFile, probes.WriteFile)},
	}

	for _, row := range rows {
		label := out.String(fmt.Sprintf("%-13s", row.label)).Foreground(out.Color(string(style.Slate)))
		if _, err := out.WriteString(label.String() + row.value + "\n"); err != nil {
			return zerr.Wrap(err, "failed to write stats")
		}
	}
	return nil
}
