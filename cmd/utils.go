package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

// terminalConfirmer asks a y/n question on stdin. Anything but "y"
// declines.
type terminalConfirmer struct{}

func (terminalConfirmer) Confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(ui.StyleWarning.Render(prompt + " (y/n): "))
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// promptLine reads one line of input with a styled prompt.
func promptLine(prompt string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(ui.StyleInfo.Render(prompt + ": "))
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// loadUploadFile stages a file from disk for upload, reconstructing the
// MIME type a browser would have sent with the form.
func loadUploadFile(path string) (*domain.UploadFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	return &domain.UploadFile{
		Name: name,
		MIME: domain.DetectMIME(name),
		Data: data,
	}, nil
}

// printSources renders a citation list under an answer.
func printSources(sources []domain.Source) {
	if len(sources) == 0 {
		return
	}
	items := make([]string, 0, len(sources))
	for _, src := range sources {
		items = append(items, src.Label())
	}
	fmt.Println(ui.FormatMuted("Sources:"))
	fmt.Print(ui.RenderSimpleList(items))
}
