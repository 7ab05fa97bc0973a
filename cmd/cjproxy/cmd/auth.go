package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanguy-kabore/cjdropshipping-api/internal/cj"
	"github.com/tanguy-kabore/cjdropshipping-api/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect and manage the stored CJ token",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored token state",
	RunE:  runAuthStatus,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against CJ and persist a fresh token",
	RunE:  runAuthLogin,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLoginCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, _, cleanup, err := openTokenStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}
	defer cleanup()

	rec, err := store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading token record: %w", err)
	}
	if rec == nil {
		fmt.Println("no token stored; run 'cjproxy auth login'")
		return nil
	}

	fmt.Printf("token stored (backend: %s)\n", cfg.TokenStore.Backend)
	fmt.Printf("  expiry:        %s\n", rec.Expiry.Format(time.RFC3339))
	if rec.Expired(time.Now()) {
		fmt.Println("  state:         expired")
	} else {
		fmt.Printf("  state:         valid (%s remaining)\n",
			time.Until(rec.Expiry).Round(time.Minute))
	}
	fmt.Printf("  refresh token: %t\n", rec.RefreshToken != "")
	return nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, _, cleanup, err := openTokenStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("opening token store: %w", err)
	}
	defer cleanup()

	auth := cj.NewAuthenticator(
		cj.Credentials{Email: cfg.CJ.Email, APIKey: cfg.CJ.APIKey},
		store,
		cj.WithAuthBaseURL(cfg.CJ.BaseURL),
		cj.WithAuthHTTPClient(&http.Client{Timeout: cfg.CJ.AuthTimeout}),
	)

	rec, err := auth.Authenticate(cmd.Context())
	if err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}

	fmt.Printf("authenticated; token valid until %s\n",
		rec.Expiry.Format(time.RFC3339))
	return nil
}
