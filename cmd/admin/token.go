package main

import (
	"fmt"

	"github.com/edupath/backend/internal/auth/service"
	"github.com/edupath/backend/internal/models"
	"github.com/spf13/cobra"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an access token for local testing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt("user")
		if userID <= 0 {
			return fmt.Errorf("--user must be a positive id")
		}
		rawRole, _ := cmd.Flags().GetString("role")
		role := models.Role(rawRole)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", rawRole)
		}

		tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
		token, err := tokenGenerator.GenerateAccessToken(userID, role)
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	issueTokenCmd.Flags().Int("user", 0, "User ID carried by the token")
	issueTokenCmd.Flags().String("role", string(models.RoleStudent), "Role carried by the token (student, teacher, admin)")
}
