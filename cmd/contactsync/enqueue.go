package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

func enqueueCmd(b *backend) *cobra.Command {
	var req service.SyncCompletedRequest

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue contact creation for a synced message channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			svc, release, err := b.syncService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to connect to queue: %w", err)
			}
			defer release()

			result, err := svc.HandleSyncCompleted(cmd.Context(), &req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", result.JobID, result.JobName, result.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.WorkspaceID, "workspace-id", "", "workspace UUID")
	cmd.Flags().StringVar(&req.MessageChannelID, "message-channel-id", "", "message channel UUID")
	_ = cmd.MarkFlagRequired("workspace-id")
	_ = cmd.MarkFlagRequired("message-channel-id")

	return cmd
}
