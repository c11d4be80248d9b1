package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mediaforge-io/adapi-client/internal/constants"
	"github.com/mediaforge-io/adapi-client/pkg/adclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		email       string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the advertising platform",
		Long: `Authenticate against a platform API endpoint and remember the endpoint
and account email. The password is never stored; subsequent commands read
it from --password or the ADAPI_PASSWORD environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				apiEndpoint = promptLine("API endpoint: ")
			}

			if apiEndpoint == "" {
				return constants.ErrNoEndpointConfigured
			}

			if email == "" {
				email = viper.GetString("email")
			}

			if email == "" {
				email = promptLine("Email: ")
			}

			if email == "" {
				return constants.ErrNoEmailConfigured
			}

			if password == "" {
				password = viper.GetString("password")
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			return runLogin(cmd.Context(), apiEndpoint, email, password)
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")

	return cmd
}

func runLogin(ctx context.Context, apiEndpoint, email, password string) error {
	client, err := adclient.NewWithLogin(ctx, apiEndpoint, email, password)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	err = client.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	viper.Set("api", apiEndpoint)
	viper.Set("email", email)

	err = saveConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s at %s\n", email, apiEndpoint)

	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored account",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("email", "")

			err := saveConfig()
			if err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}

func promptLine(prompt string) string {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print(prompt)

	line, _ := reader.ReadString('\n')

	return strings.TrimSpace(line)
}

// saveConfig persists the endpoint and account email, never the password.
func saveConfig() error {
	err := viper.WriteConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("saving config: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	path := filepath.Join(home, ".adapi", "config.yml")

	err = viper.WriteConfigAs(path)
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	return os.Chmod(path, constants.ConfigFilePerm)
}
