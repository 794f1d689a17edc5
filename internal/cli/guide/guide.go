// Package guide prints the hireboard user guide
package guide

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideContent string

// GuideCmd returns the guide command
func GuideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the hireboard user guide",
		Long: `Show the hireboard user guide rendered for the terminal.
Use --raw for the markdown source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")
			width, _ := cmd.Flags().GetInt("width")
			if raw {
				fmt.Print(guideContent)
				return nil
			}
			out, err := Render(width)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().Bool("raw", false, "Print the markdown source")
	cmd.Flags().Int("width", 80, "Wrap width")
	return cmd
}

// Render returns the guide styled for the terminal
func Render(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(guideContent)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
