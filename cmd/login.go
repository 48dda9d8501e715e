package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the DocChat server",
	Long: `Log in to the DocChat server and store the session token.

Prompts for username and password when not given as flags.

Examples:
  docchat login
  docchat login -u alice`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	username := loginUsername
	if username == "" {
		var err error
		username, err = promptLine("Username")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		var err error
		password, err = promptLine("Password")
		if err != nil {
			return err
		}
	}

	if err := authService.Login(ctx, username, password); err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return nil
	}

	fmt.Println(ui.FormatSuccess("Logged in as " + username))
	return nil
}
