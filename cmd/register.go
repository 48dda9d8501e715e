package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var (
	registerUsername string
	registerEmail    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a DocChat account",
	Long: `Create a new account on the DocChat server, then log in with
'docchat login'.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Account username")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	username := registerUsername
	if username == "" {
		var err error
		username, err = promptLine("Username")
		if err != nil {
			return err
		}
	}
	email := registerEmail
	if email == "" {
		var err error
		email, err = promptLine("Email")
		if err != nil {
			return err
		}
	}
	password, err := promptLine("Password")
	if err != nil {
		return err
	}

	if err := authService.Register(ctx, username, email, password); err != nil {
		fmt.Println(ui.FormatError(err.Error()))
		return nil
	}

	fmt.Println(ui.FormatSuccess("Account created. Run 'docchat login' to sign in."))
	return nil
}
