package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/services"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var askDocs []string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question about your documents",
	Long: `Ask a question and print the answer with its source citations.

Without --doc the question is answered across all uploaded documents.
Each --doc narrows the search to the named file.

Examples:
  docchat ask "What is the refund policy?"
  docchat ask --doc policy.pdf "How long do refunds take?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askDocs, "doc", "d", nil, "Scope the question to this document (repeatable)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	question := strings.Join(args, " ")

	// Scoping by filename needs the listing to resolve ids.
	if len(askDocs) > 0 {
		if err := registryService.Refresh(ctx); err != nil {
			fmt.Println(ui.FormatError(services.MsgNetworkError))
			return nil
		}
		assets := registryService.Assets()
		for _, doc := range askDocs {
			id, ok := findAssetID(assets, doc)
			if !ok {
				fmt.Println(ui.FormatError("No uploaded document named " + doc))
				os.Exit(1)
			}
			if !selection.Has(id) {
				selection.Toggle(id)
			}
		}
	}

	outcome := sessionService.Send(ctx, question)
	if outcome.Status != services.SendOK {
		fmt.Println(ui.FormatError(outcome.Detail))
		os.Exit(1)
	}

	messages := sessionService.Messages()
	last := messages[len(messages)-1]
	fmt.Println(ui.IconRobot + " " + last.Text)
	if len(last.Sources) > 0 {
		fmt.Println()
		printSources(last.Sources)
	}
	return nil
}

func findAssetID(assets []domain.Asset, filename string) (int64, bool) {
	for _, a := range assets {
		if strings.EqualFold(a.Filename, filename) {
			return a.ID, true
		}
	}
	return 0, false
}
