package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

// Populated at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Print the client version",
	Long:    `Print the docchat client version and the commit and date it was built from. (alias: v)`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", ui.StyleTitle.Render("docchat"), Version)
		fmt.Println(ui.FormatMuted(fmt.Sprintf("commit %s, built %s", GitCommit, BuildDate)))
	},
}
