package commands

import (
	"fmt"

	"github.com/askdesk/askdesk-go/api"
	"github.com/askdesk/askdesk-go/consts"

	"github.com/spf13/cobra"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend liveness",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			var status *api.HealthStatus
			err = api.Retry(cmd.Context(), func() error {
				var err error
				status, err = app.client.Health(cmd.Context())
				return err
			}, consts.MaxRetries, consts.RetryDelay)
			if err != nil {
				return err
			}

			fmt.Printf("Backend status: %s\n", status.Status)
			return nil
		},
	}
}
