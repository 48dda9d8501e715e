package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session token",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	if !authService.HasCredential() {
		fmt.Println(ui.FormatInfo("Not logged in."))
		return nil
	}
	authService.Logout()
	fmt.Println(ui.FormatSuccess("Logged out."))
	return nil
}
