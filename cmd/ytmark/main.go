package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/ytmark/internal/catalog"
	"github.com/nikbrunner/ytmark/internal/exporter"
	"github.com/nikbrunner/ytmark/internal/importer"
	"github.com/nikbrunner/ytmark/internal/logger"
	"github.com/nikbrunner/ytmark/internal/page"
	"github.com/nikbrunner/ytmark/internal/picker"
	"github.com/nikbrunner/ytmark/internal/search"
	"github.com/nikbrunner/ytmark/internal/storage"
	"github.com/nikbrunner/ytmark/internal/thumbnail"
	"github.com/nikbrunner/ytmark/internal/tui"
	"github.com/nikbrunner/ytmark/internal/videoid"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			if len(os.Args) < 4 {
				fmt.Fprintf(os.Stderr, "Usage: ytmark add <title> <url>\n")
				os.Exit(1)
			}
			runAdd(os.Args[2], os.Args[3])
			return
		case "list":
			pageNum := 1
			if len(os.Args) >= 3 {
				if n, err := strconv.Atoi(os.Args[2]); err == nil {
					pageNum = n
				}
			}
			runList(pageNum)
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: ytmark import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `ytmark - terminal watch-later list for YouTube videos

Usage:
  ytmark                    Open interactive TUI
  ytmark <query>            Quick search → select → open
  ytmark add <title> <url>  Add a video link
  ytmark list [page]        Print one page of the list
  ytmark import <file>      Import videos from bookmark HTML
  ytmark export [path]      Export videos to bookmark HTML
  ytmark help               Show this help

TUI Keybindings:
  j/k         Move down/up
  h/l         Previous/next page
  o/Enter     Open video in browser
  p           Play via embed player
  a           Add video
  d           Delete (asks for confirmation)
  /           Fuzzy search
  Y           Copy URL to clipboard
  r           Reload
  q           Quit

Data Storage:
  ~/.config/ytmark/videos.json
`
	fmt.Print(help)
}

// openService wires storage, config and logging together.
func openService() (*catalog.Service, *storage.Config, *zap.Logger) {
	log := logger.Nop()
	if path, err := logger.DefaultLogPath(); err == nil {
		if fileLog, err := logger.New(path); err == nil {
			log = fileLog
		}
	}

	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := storage.OpenStorage(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	return catalog.NewService(st, log), config, log
}

// runTUI runs the full interactive TUI.
func runTUI() {
	service, config, log := openService()
	defer log.Sync()

	prober := thumbnail.NewHTTPProber(time.Duration(config.ProbeTimeoutSeconds) * time.Second)
	app := tui.NewApp(tui.AppParams{
		Service: service,
		Prober:  prober,
		OpenURL: openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runAdd adds a single video from the command line.
func runAdd(title, url string) {
	service, _, log := openService()
	defer log.Sync()

	if err := service.Add(title, url); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Added: %s\n", strings.TrimSpace(title))
}

// runList prints one page of the collection, with resolved thumbnails.
func runList(pageNum int) {
	service, config, log := openService()
	defer log.Sync()

	if pageNum < 1 {
		pageNum = 1
	}
	pg, _, err := service.List(page.Cursor{Page: pageNum})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading videos: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(pg.Label())
	if len(pg.Entries) == 0 {
		return
	}

	// Resolve thumbnails for the visible page only.
	ids := make([]string, 0, len(pg.Entries))
	for _, e := range pg.Entries {
		if id, ok := videoid.Extract(e.URL); ok {
			ids = append(ids, id)
		}
	}
	prober := thumbnail.NewHTTPProber(time.Duration(config.ProbeTimeoutSeconds) * time.Second)
	resolved := thumbnail.ResolveAll(context.Background(), prober, ids, config.ProbeConcurrency)

	for i, e := range pg.Entries {
		fmt.Printf("%2d. %s\n", pg.Start+i+1, e.Title)
		fmt.Printf("    %s  (%s)\n", e.URL, e.AddedAt.Format("2006-01-02"))
		if id, ok := videoid.Extract(e.URL); ok {
			if thumb, found := resolved[id]; found {
				fmt.Printf("    thumbnail: %s\n", thumb)
			} else {
				fmt.Printf("    thumbnail: not available\n")
			}
		}
	}
}

// runQuickSearch performs a fuzzy search and opens the selected video.
func runQuickSearch(query string) {
	service, _, log := openService()
	defer log.Sync()

	collection, err := service.Entries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading videos: %v\n", err)
		os.Exit(1)
	}

	results := search.FuzzySearch(collection, query)
	if len(results) == 0 {
		fmt.Printf("No videos found for '%s'\n", query)
		os.Exit(0)
	}

	var url string
	if len(results) == 1 {
		fmt.Printf("Opening: %s\n", results[0].Entry.Title)
		url = results[0].Entry.URL
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		if entry := finalPicker.SelectedEntry(); entry != nil {
			url = entry.URL
		}
	}

	if url != "" {
		openURL(url)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	service, _, log := openService()
	defer log.Sync()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	entries, err := importer.ParseHTMLVideos(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, err := service.Import(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing videos: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d videos", added)
	if skipped := len(entries) - added; skipped > 0 {
		fmt.Printf(" (%d skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	service, _, log := openService()
	defer log.Sync()

	collection, err := service.Entries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading videos: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(collection)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d videos to %s\n", collection.Len(), outputPath)
}
