// Package notification implements the notification subcommands
package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/hireboard/internal/cli"
	"github.com/thenoetrevino/hireboard/internal/models"
)

// NotificationCmd returns the notification parent command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Queue and inspect outbound notifications",
	}

	cmd.AddCommand(SendCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}

// SendCmd returns the notification send subcommand
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Queue a templated email or SMS",
		Long: `Queue a templated email or SMS in the outbox.

Examples:
  hireboard notification send --template interview-invite \
    --to sarah@example.com --set candidate=Sarah --set time="Jan 20 14:00"
  hireboard notification send --channel sms --template reminder --to +15551234 \
    --payload '{"minutes": 15}'
`,
		RunE: runSend,
	}

	cmd.Flags().String("template", "", "Template name (required)")
	cmd.Flags().StringSlice("to", nil, "Recipients (required)")
	for _, name := range []string{"template", "to"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
	cmd.Flags().String("channel", string(models.ChannelEmail), "Channel: email or sms")
	cmd.Flags().String("payload", "", "Template payload as a JSON object")
	cmd.Flags().StringArray("set", nil, "Payload entry as key=value (repeatable)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.CloseOrLog()

	channel, _ := cmd.Flags().GetString("channel")
	template, _ := cmd.Flags().GetString("template")
	recipients, _ := cmd.Flags().GetStringSlice("to")
	rawPayload, _ := cmd.Flags().GetString("payload")
	sets, _ := cmd.Flags().GetStringArray("set")

	payload := map[string]any{}
	if rawPayload != "" {
		if err := json.Unmarshal([]byte(rawPayload), &payload); err != nil {
			return formatter.FailWith(cli.ExitDataErr, "INVALID_PAYLOAD", fmt.Errorf("payload must be a JSON object: %w", err))
		}
	}
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return formatter.FailWith(cli.ExitDataErr, "INVALID_PAYLOAD", fmt.Errorf("--set %q is not key=value", kv))
		}
		payload[key] = value
	}

	err = cliInstance.App.Client().SendNotification(cmd.Context(), models.NotificationRequest{
		Channel:    models.NotificationChannel(strings.ToLower(channel)),
		Recipients: recipients,
		Template:   template,
		Payload:    payload,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":    true,
			"template":   template,
			"recipients": len(recipients),
		})
	}
	fmt.Printf("✓ '%s' queued for %s\n", template, strings.Join(recipients, ", "))
	return nil
}

// ListCmd returns the notification list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the outbox, oldest first",
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

	outbox, err := cliInstance.App.Repo().ListNotifications(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, n := range outbox {
			fmt.Println(n.ID)
		}
		return nil
	}
	if formatter.JSON {
		out := make([]map[string]any, 0, len(outbox))
		for _, n := range outbox {
			out = append(out, map[string]any{
				"id":         n.ID,
				"channel":    n.Channel,
				"recipients": n.Recipients,
				"template":   n.Template,
				"payload":    n.Payload,
				"created_at": n.CreatedAt.Format(time.RFC3339),
			})
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success":       true,
			"notifications": out,
		})
	}

	if len(outbox) == 0 {
		fmt.Println("Outbox is empty")
		return nil
	}
	for _, n := range outbox {
		fmt.Printf("  %s  %-5s %s → %s\n", n.CreatedAt.Local().Format("2006-01-02 15:04"),
			n.Channel, n.Template, strings.Join(n.Recipients, ", "))
	}
	return nil
}
