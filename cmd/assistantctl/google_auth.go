package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"smart-assistant/pkg/googleauth"
)

func (c *cli) newGoogleAuthCmd() *cobra.Command {
	var credentialsPath, tokenPath string
	cmd := &cobra.Command{
		Use:   "google-auth",
		Short: "Authorize Google Calendar and Tasks access and save the user token",
		Long: "Run once with an OAuth Desktop App client file. Open the printed URL, " +
			"sign in, paste the authorization code and the token is written to --token.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthCfg, err := googleauth.OAuthConfig(credentialsPath, googleauth.Scopes...)
			if err != nil {
				return fmt.Errorf("%w (expected an OAuth Desktop App client file)", err)
			}

			c.println("Open this URL in a browser and sign in with the Google account to use:")
			c.println()
			c.println(oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			c.println()
			c.printf("Paste the authorization code: ")

			code, err := bufio.NewReader(c.in).ReadString('\n')
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code read: %v", err)
			}

			tok, err := oauthCfg.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if err := googleauth.SaveToken(tokenPath, tok); err != nil {
				return err
			}
			c.printf("\nToken saved to %s. Restart the service to enable Google Calendar and Tasks.\n", tokenPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&credentialsPath, "credentials", "credentials.json", "OAuth client credentials file")
	cmd.Flags().StringVar(&tokenPath, "token", "token.json", "Where to write the user token")
	return cmd
}
