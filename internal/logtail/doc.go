// Package logtail reads, filters and colorizes the fitlog log file.
//
// # Reading Log Files
//
// Read extracts the last maxLines from a file with a ring buffer, so memory
// stays O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//
// Read returns nil, nil for a missing file. Other errors are wrapped.
//
// # Levels
//
// The logger writes lines such as
//
//	2024/01/01 08:00:00 WARN fitlog: skipped record kind=food id=7
//
// LineLevel finds the level token among the first few fields. Filter drops
// lines below a minimum level; indented continuation lines inherit the level
// of the line above them.
//
// # Colorization
//
// ColorizeLine renders a whole line with a lipgloss style chosen by level.
// Lines without a level token are returned unchanged. On a terminal without
// color support lipgloss emits the text as is.
package logtail
