package util

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// SpreadsheetURL edit URL of a Google spreadsheet
func SpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", url.PathEscape(spreadsheetID))
}

// openCommands candidate commands opening target on goos, in order of preference.
func openCommands(goos, target string) [][]string {
	switch goos {
	case "windows":
		// rundll32 works on Windows 7 as well; explorer is the fallback
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", target},
			{"explorer", target},
		}
	case "darwin":
		return [][]string{{"open", target}}
	default:
		return [][]string{
			{"xdg-open", target},
			{"sensible-browser", target},
			{"google-chrome", target},
			{"firefox", target},
		}
	}
}

// Open opens a URL or file with the desktop default handler.
// The first command that starts wins.
func Open(target string) error {
	var err error
	for _, argv := range openCommands(runtime.GOOS, target) {
		if err = exec.Command(argv[0], argv[1:]...).Start(); err == nil {
			return nil
		}
	}
	return fmt.Errorf("open %s: %w", target, err)
}
