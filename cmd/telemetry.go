package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/apimesh/apimesh/internal/telemetry"
	"github.com/apimesh/apimesh/internal/userconfig"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Inspect anonymous usage telemetry",
	Long: `Inspect the anonymous usage telemetry configuration.

Telemetry is on by default and carries no personal data: events are keyed by
a random installation id, never by machine identity. Set APIMESH_TELEMETRY=0
or DO_NOT_TRACK=1 to opt out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return telemetryStatusCmd.RunE(cmd, args)
	},
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show telemetry configuration and installation id",
	RunE: func(cmd *cobra.Command, args []string) error {
		tel := telemetry.Default()
		cfg := tel.Config()

		state := enabledStyle.Render("enabled")
		if !tel.Enabled() {
			state = disabledStyle.Render("disabled")
		}

		installID := mutedStyle.Render("not yet created")
		if id, ok := userconfig.Load(cfg.ConfigPath)[userconfig.InstallIDKey].(string); ok && id != "" {
			installID = id
		}

		fmt.Printf("%s %s\n", labelStyle.Render("telemetry:"), state)
		fmt.Printf("%s %s\n", labelStyle.Render("endpoint:"), tel.Endpoint())
		fmt.Printf("%s %s\n", labelStyle.Render("config file:"), cfg.ConfigPath)
		fmt.Printf("%s %s\n", labelStyle.Render("install id:"), installID)
		return nil
	},
}

var telemetryPingCmd = &cobra.Command{
	Use:    "ping",
	Short:  "Send a test event",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		tel := telemetry.Default()
		if !tel.Enabled() {
			return fmt.Errorf("telemetry is disabled")
		}

		tel.Capture("apimesh_telemetry_ping", map[string]any{
			"run_id": telemetry.NewRunID(),
		})

		// Delivery is fire-and-forget; give the detached request a moment to
		// complete before the process exits.
		time.Sleep(2 * time.Second)
		fmt.Println("sent")
		return nil
	},
}

func init() {
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryPingCmd)
	RootCmd.AddCommand(telemetryCmd)
}
