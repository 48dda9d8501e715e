package cmd

import (
	"fmt"
	"os"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/services"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage uploaded documents",
	Long: `List, upload, and delete the documents stored on the DocChat
server.

Examples:
  docchat assets list
  docchat assets upload report.pdf
  docchat assets delete`,
}

var assetsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List uploaded documents",
	Aliases: []string{"ls"},
	RunE:    runAssetsList,
}

var assetsUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload one or more documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAssetsUpload,
}

var assetsDeleteCmd = &cobra.Command{
	Use:   "delete [filename]",
	Short: "Delete an uploaded document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAssetsDelete,
}

func init() {
	assetsCmd.AddCommand(assetsListCmd)
	assetsCmd.AddCommand(assetsUploadCmd)
	assetsCmd.AddCommand(assetsDeleteCmd)
}

func runAssetsList(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	if err := registryService.Refresh(ctx); err != nil {
		fmt.Println(ui.FormatError(services.MsgNetworkError))
		os.Exit(1)
	}

	assets := registryService.Assets()
	if len(assets) == 0 {
		fmt.Println(ui.FormatInfo("No documents uploaded yet."))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 4, Align: "right"},
		{Header: "NAME", Width: 24},
		{Header: "TYPE", Width: 6},
		{Header: "SIZE", Width: 9, Align: "right"},
		{Header: "UPLOADED", Width: 10},
	})
	for _, a := range assets {
		table.AddRow([]string{
			fmt.Sprintf("%d", a.ID),
			a.Filename,
			a.Type,
			ui.FormatSize(a.Size),
			a.UploadedAt.Format("2006-01-02"),
		})
	}
	fmt.Print(table.Render())
	fmt.Println(ui.FormatMuted(fmt.Sprintf("%d documents", len(assets))))
	return nil
}

func runAssetsUpload(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	failed := false
	for _, path := range args {
		file, err := loadUploadFile(path)
		if err != nil {
			fmt.Println(ui.FormatError(err.Error()))
			failed = true
			continue
		}
		outcome := registryService.Upload(ctx, file)
		if outcome.Status == services.UploadOK {
			fmt.Println(ui.FormatSuccess(outcome.Detail))
		} else {
			fmt.Println(ui.FormatError(outcome.Detail))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}

func runAssetsDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	if err := registryService.Refresh(ctx); err != nil {
		fmt.Println(ui.FormatError(services.MsgNetworkError))
		os.Exit(1)
	}

	assets := registryService.Assets()
	if len(assets) == 0 {
		fmt.Println(ui.FormatWarning("No documents uploaded."))
		return nil
	}

	// Select asset
	var selected *domain.Asset
	if len(args) == 1 {
		id, ok := findAssetID(assets, args[0])
		if !ok {
			fmt.Println(ui.FormatWarning("No uploaded document named " + args[0]))
			return nil
		}
		for i := range assets {
			if assets[i].ID == id {
				selected = &assets[i]
			}
		}
	} else {
		idx, err := fuzzyfinder.Find(
			assets,
			func(i int) string {
				return assets[i].Filename
			},
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				a := assets[i]
				return fmt.Sprintf("Name: %s\nType: %s\nSize: %s\nUploaded: %s",
					a.Filename,
					strings.ToUpper(a.Type),
					ui.FormatSize(a.Size),
					a.UploadedAt.Format("2006-01-02 15:04"))
			}),
		)
		if err != nil {
			// User cancelled (Ctrl+C or ESC)
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		selected = &assets[idx]
	}

	outcome := registryService.Delete(ctx, selected.ID, selected.Filename)
	switch outcome.Status {
	case services.DeleteOK:
		fmt.Println(ui.FormatSuccess(outcome.Detail))
	case services.DeleteCancelled:
		fmt.Println("Cancelled.")
	case services.DeleteMissing:
		fmt.Println(ui.FormatWarning(outcome.Detail))
	default:
		fmt.Println(ui.FormatError(outcome.Detail))
		os.Exit(1)
	}
	return nil
}
