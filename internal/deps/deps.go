package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"hardsub/internal/config"
)

// Requirement defines an external binary the scan pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the external tools the configured pipeline shells out to.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Reads video resolution and duration before sampling"},
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Extracts sampled frames for text detection"},
		{Name: "Tesseract", Command: cfg.TesseractBinary(), Description: "Recognizes text regions in extracted frames"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are
// unavailable.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
