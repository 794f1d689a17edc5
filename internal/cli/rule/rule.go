// Package rule implements the automation rule subcommands
package rule

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// RuleCmd returns the rule parent command
func RuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage automation rules fired by stage moves",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(toggleCmd("enable", true))
	cmd.AddCommand(toggleCmd("disable", false))

	return cmd
}

// ListCmd returns the rule list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List automation rules",
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	rules, err := cliInstance.App.Repo().ListRules(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, r := range rules {
			fmt.Println(r.ID)
		}
		return nil
	}
	if formatter.JSON {
		out := make([]map[string]any, 0, len(rules))
		for _, r := range rules {
			out = append(out, map[string]any{
				"id":     r.ID,
				"name":   r.Name,
				"active": r.Active,
				"on":     r.On,
				"from":   stageOrAny(r.From),
				"to":     stageOrAny(r.To),
			})
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"rules":   out,
		})
	}

	for _, r := range rules {
		state := "on "
		if !r.Active {
			state = "off"
		}
		fmt.Printf("  [%s] %s  %s (%s → %s)\n", state, r.ID, r.Name, stageOrAny(r.From), stageOrAny(r.To))
	}
	return nil
}

// CreateCmd returns the rule create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an automation rule",
		Long: `Add a rule that fires when a candidate moves. An empty --from or
--to matches any stage.

Examples:
  hireboard rule create --id notify-hm --name "Notify hiring manager" --to finalist
`,
		RunE: runCreate,
	}

	cmd.Flags().String("id", "", "Rule ID (required)")
	cmd.Flags().String("name", "", "Description (required)")
	for _, name := range []string{"id", "name"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cmd.Flags().String("from", "", "Source stage")
	cmd.Flags().String("to", "", "Destination stage")
	cmd.Flags().Bool("inactive", false, "Create the rule disabled")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	inactive, _ := cmd.Flags().GetBool("inactive")

	rule := models.AutomationRule{
		ID:     types.RuleID(id),
		Name:   name,
		Active: !inactive,
		On:     models.TriggerCandidateMoved,
	}
	for flag, dst := range map[string]**models.Stage{"from": &rule.From, "to": &rule.To} {
		raw, _ := cmd.Flags().GetString(flag)
		if raw == "" {
			continue
		}
		stage, err := models.ParseStage(raw)
		if err != nil {
			return formatter.FailWith(cli.ExitValidation, "INVALID_STAGE", err)
		}
		*dst = &stage
	}

	if err := cliInstance.App.Repo().CreateRule(cmd.Context(), rule); err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(rule.ID)
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{"success": true, "id": rule.ID})
	}
	fmt.Printf("✓ Rule '%s' created\n", rule.ID)
	return nil
}

func toggleCmd(use string, active bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an automation rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliInstance, formatter, err := cli.Start(cmd)
			if err != nil {
				return err
			}
			defer cliInstance.CloseOrLog()

			id := types.RuleID(args[0])
			if err := cliInstance.App.Repo().SetRuleActive(cmd.Context(), id, active); err != nil {
				return formatter.Fail(err)
			}
			if formatter.Quiet {
				return nil
			}
			if formatter.JSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{"success": true, "id": id, "active": active})
			}
			fmt.Printf("Rule %s %sd\n", id, use)
			return nil
		},
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func stageOrAny(s *models.Stage) string {
	if s == nil {
		return "any"
	}
	return string(*s)
}
