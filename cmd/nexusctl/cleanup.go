package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus-project-api/internal/client"
	"nexus-project-api/internal/job"
	"nexus-project-api/internal/repository"
)

func init() {
	cleanupCmd.AddCommand(cleanupAttachmentsCmd)
	cleanupCmd.AddCommand(cleanupNotificationsCmd)
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run a scheduled cleanup job once",
}

var cleanupAttachmentsCmd = &cobra.Command{
	Use:   "attachments",
	Short: "Delete expired unconfirmed attachments and their stored files",
	Args:  cobra.NoArgs,
	RunE:  runCleanupAttachments,
}

var cleanupNotificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Delete read notifications older than app.notification_retention_days",
	Args:  cobra.NoArgs,
	RunE:  runCleanupNotifications,
}

func runCleanupAttachments(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	var s3Client client.S3ClientInterface
	if e.cfg.S3.Enabled() {
		c, err := client.NewS3Client(cmd.Context(), &e.cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		s3Client = c
	}

	cleanup := job.NewCleanupJob(repository.NewAttachmentRepository(e.db), s3Client, e.logger)
	result, err := cleanup.RunOnce(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Expired attachments: found=%d deleted=%d failed=%d\n",
		result.Found, result.Deleted, result.Failed)
	return err
}

func runCleanupNotifications(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	cleanup := job.NewNotificationCleanupJob(repository.NewNotificationRepository(e.db), e.cfg.App.NotificationRetentionDays, e.logger)
	deleted, err := cleanup.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Read notifications deleted: %d\n", deleted)
	return nil
}
