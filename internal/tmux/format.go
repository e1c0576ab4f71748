package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// Window user options maintained by tabmagnet.
const (
	OptionOpener = "@tabmagnet_opener"
	OptionPinned = "@tabmagnet_pinned"
)

// WindowFormat is the -F format understood by ParseWindows. The name is last
// so it may contain separators.
const WindowFormat = "#{window_id}\t#{session_id}\t#{window_index}\t#{window_active}\t#{" + OptionOpener + "}\t#{" + OptionPinned + "}\t#{window_name}"

const windowFields = 7

// WindowInfo is one line of WindowFormat output.
type WindowInfo struct {
	ID        string
	SessionID string
	Index     int
	Active    bool
	Opener    string
	Pinned    bool
	Name      string
}

// ParseWindows parses list-windows or display-message output produced with
// WindowFormat. Blank lines are ignored.
func ParseWindows(output string) ([]WindowInfo, error) {
	var windows []WindowInfo
	for n, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", windowFields)
		if len(fields) != windowFields {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", n+1, windowFields, len(fields))
		}
		index, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid window index %q: %w", n+1, fields[2], err)
		}
		windows = append(windows, WindowInfo{
			ID:        fields[0],
			SessionID: fields[1],
			Index:     index,
			Active:    fields[3] == "1",
			Opener:    fields[4],
			Pinned:    parseFlag(fields[5]),
			Name:      fields[6],
		})
	}
	return windows, nil
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "on", "yes", "true":
		return true
	}
	return false
}
