package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/services"
	"github.com/kamal-hamza/docchat-cli/pkg/ui"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and auto-upload new documents",
	Long: `Watch a directory for new or modified documents and upload them
to the DocChat server automatically.

Only files with a supported extension (.pdf, .txt, .md, .docx, .png,
.jpg) are considered. Files that fail the size or type checks are
skipped with a warning.

Use --quiet to suppress per-file notifications.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress per-file notifications")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	requireLogin()

	dir := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatInfo("Watching: " + dir))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Debounce per file so editors writing in several chunks trigger a
	// single upload.
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	uploadPath := func(path string) {
		mu.Lock()
		delete(timers, path)
		mu.Unlock()

		file, err := loadUploadFile(path)
		if err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatWarning("Skipped " + filepath.Base(path) + ": " + err.Error()))
			}
			return
		}
		outcome := registryService.Upload(ctx, file)
		if watchQuiet {
			return
		}
		switch outcome.Status {
		case services.UploadOK:
			fmt.Println(ui.FormatSuccess(outcome.Detail))
		case services.UploadRejected:
			fmt.Println(ui.FormatWarning("Skipped " + file.Name + ": " + outcome.Detail))
		default:
			fmt.Println(ui.FormatError(outcome.Detail))
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only care about uploadable files
			if domain.DetectMIME(event.Name) == "" {
				continue
			}

			// Filter out temporary/hidden files
			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				path := event.Name
				mu.Lock()
				if timer, exists := timers[path]; exists {
					timer.Stop()
				}
				timers[path] = time.AfterFunc(debounceDuration, func() {
					uploadPath(path)
				})
				mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watch stopped"))
			}
			return nil
		}
	}
}
