package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"nexus-project-api/internal/domain"
	"nexus-project-api/internal/repository"
)

var (
	botEmail    string
	botUsername string
	botID       string
)

func init() {
	botCreateCmd.Flags().StringVar(&botEmail, "email", "", "email of the system actor (required)")
	botCreateCmd.Flags().StringVar(&botUsername, "username", "nexus-bot", "display username")
	botCreateCmd.Flags().StringVar(&botID, "id", "", "user ID to use (defaults to app.system_actor_id, else a new UUID)")
	_ = botCreateCmd.MarkFlagRequired("email")

	botCmd.AddCommand(botCreateCmd)
	rootCmd.AddCommand(botCmd)
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Manage the system actor account",
}

var botCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the system actor that authors automatic comments",
	Long: `Create the user that posts the review comment when a task is finished.
Running it again with the same email prints the existing account.

Examples:
  nexusctl bot create --email bot@nexus.local
  nexusctl bot create --email bot@nexus.local --id 7d9f0c3e-2b1a-4c5d-8e6f-0a1b2c3d4e5f`,
	Args: cobra.NoArgs,
	RunE: runBotCreate,
}

func runBotCreate(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(botEmail)
	if email == "" {
		return errors.New("--email must not be empty")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	id := e.cfg.App.SystemActor()
	if botID != "" {
		if id, err = uuid.Parse(botID); err != nil {
			return fmt.Errorf("invalid --id: %w", err)
		}
	}

	users := repository.NewUserRepository(e.db)
	ctx := cmd.Context()

	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "System actor already exists: %s\n", existing.ID)
		printActorHint(cmd, e.cfg.App.SystemActor(), existing.ID)
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up %s: %w", email, err)
	}

	bot := &domain.User{Email: email, Username: botUsername, FirstName: "Nexus", LastName: "Bot"}
	bot.ID = id
	if err := users.Create(ctx, bot); err != nil {
		return fmt.Errorf("failed to create system actor: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "System actor created: %s\n", bot.ID)
	printActorHint(cmd, e.cfg.App.SystemActor(), bot.ID)
	return nil
}

func printActorHint(cmd *cobra.Command, configured, actual uuid.UUID) {
	if configured != actual {
		fmt.Fprintf(cmd.OutOrStdout(), "Set app.system_actor_id (or SYSTEM_ACTOR_ID) to %s\n", actual)
	}
}
