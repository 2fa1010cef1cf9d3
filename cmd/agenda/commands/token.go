package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventagenda/config"
	"eventagenda/internal/adapters/auth"
	"eventagenda/internal/domain"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local testing",
		Long: `Issue a JWT signed with JWT_SECRET. Identity is normally owned by an
external provider; this command exists for development and smoke tests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			token, err := issueToken(cfg.JWTSecret, userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Subject user ID (required)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAttendee), "Role: attendee or organizer")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func issueToken(secret, userID, role string, ttl time.Duration) (string, error) {
	switch domain.Role(role) {
	case domain.RoleAttendee, domain.RoleOrganizer:
	default:
		return "", fmt.Errorf("invalid role %q: want %s or %s", role, domain.RoleAttendee, domain.RoleOrganizer)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("--ttl must be positive")
	}
	if secret == "" {
		secret = devJWTSecret
	}
	token, err := auth.NewJWTIssuer(secret).Issue(userID, []string{role}, ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
