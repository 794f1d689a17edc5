package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// ResolveStage turns a move target into a stage. "next" and "prev" are
// relative to current; anything else is parsed as a stage name.
func ResolveStage(current models.Stage, target string) (models.Stage, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "next":
		next, ok := current.Next()
		if !ok {
			return "", fmt.Errorf("candidate is already in the last stage (%s)", current)
		}
		return next, nil
	case "prev", "previous":
		prev, ok := current.Prev()
		if !ok {
			return "", fmt.Errorf("candidate is already in the first stage (%s)", current)
		}
		return prev, nil
	default:
		return models.ParseStage(target)
	}
}

// FormatAvailableStages lists the stage names for suggestions
func FormatAvailableStages() string {
	return strings.Join(models.StageNames(), ", ")
}

// ParseTime accepts RFC 3339 or "2006-01-02 15:04" in local time
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339 or YYYY-MM-DD HH:MM)", raw)
	}
	return t, nil
}

// CandidateIDs converts raw arguments, dropping blanks and duplicates
func CandidateIDs(raw []string) []types.CandidateID {
	seen := make(map[types.CandidateID]bool, len(raw))
	ids := make([]types.CandidateID, 0, len(raw))
	for _, r := range raw {
		for part := range strings.SplitSeq(r, ",") {
			id := types.CandidateID(strings.TrimSpace(part))
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// AddOutputFlags registers the --json and --quiet flags every command carries
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// Formatter builds an OutputFormatter from the command's output flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}
