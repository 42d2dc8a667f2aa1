package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raymond9734/messaging-contact-sync/internal/models"
	"github.com/Raymond9734/messaging-contact-sync/internal/service"
)

func flagCmd(b *backend) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Read or change workspace feature flags",
	}

	cmd.AddCommand(flagGetCmd(b))
	cmd.AddCommand(flagSetCmd(b))

	return cmd
}

func flagGetCmd(b *backend) *cobra.Command {
	var req service.FeatureFlagRequest

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the value of a feature flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			svc, release, err := b.flagService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer release()

			result, err := svc.Get(cmd.Context(), &req)
			if err != nil {
				return err
			}

			printFlag(cmd, result)
			return nil
		},
	}

	addFlagIdentity(cmd, &req)

	return cmd
}

func flagSetCmd(b *backend) *cobra.Command {
	var (
		req   service.SetFeatureFlagRequest
		value bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a feature flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Value = &value
			if err := req.Validate(); err != nil {
				return err
			}

			svc, release, err := b.flagService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer release()

			result, err := svc.Set(cmd.Context(), &req)
			if err != nil {
				return err
			}

			printFlag(cmd, result)
			return nil
		},
	}

	addFlagIdentity(cmd, &req.FeatureFlagRequest)
	cmd.Flags().BoolVar(&value, "value", false, "flag value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func addFlagIdentity(cmd *cobra.Command, req *service.FeatureFlagRequest) {
	cmd.Flags().StringVar(&req.WorkspaceID, "workspace-id", "", "workspace UUID")
	cmd.Flags().StringVar(&req.Key, "key", models.FeatureFlagContactCreationForSentAndReceivedEmails, "feature flag key")
	_ = cmd.MarkFlagRequired("workspace-id")
}

func printFlag(cmd *cobra.Command, result *service.FeatureFlagResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s=%t\n", result.WorkspaceID, result.Key, result.Value)
}
