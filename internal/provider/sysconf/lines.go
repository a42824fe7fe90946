package sysconf

import (
	"strings"
)

// stripLines removes every line the predicate matches. The returned bool
// reports whether anything was removed.
func stripLines(content string, match func(line string) bool) (string, bool) {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	changed := false

	for i, line := range lines {
		// Split leaves a trailing empty element when the file ends in a
		// newline; keep it so the file shape survives the rewrite.
		if i == len(lines)-1 && line == "" {
			kept = append(kept, line)
			continue
		}
		if match(line) {
			changed = true
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), changed
}

// hasLine reports whether any line matches the predicate.
func hasLine(content string, match func(line string) bool) bool {
	for _, line := range strings.Split(content, "\n") {
		if match(line) {
			return true
		}
	}
	return false
}

// blockMarkers derives the managed-block delimiters from the manifest
// marker, e.g. "# orbit panel >>>" and "# orbit panel <<<".
func blockMarkers(marker string) (start, end string) {
	return marker + " >>>", marker + " <<<"
}

// removeManagedBlock deletes a marker-delimited block, delimiters
// included. A start marker without an end marker drops everything from
// the start marker to EOF. Returns the new content and whether a block
// was removed.
func removeManagedBlock(content, marker string) (string, bool) {
	start, end := blockMarkers(marker)

	startIdx := strings.Index(content, start)
	if startIdx == -1 {
		return content, false
	}

	// Back up to the start of the marker's line.
	lineStart := strings.LastIndex(content[:startIdx], "\n")
	if lineStart == -1 {
		lineStart = 0
	} else {
		lineStart++
	}

	// Only an end marker after the start marker terminates the block; a
	// stray one earlier in the file must not truncate the cut.
	searchFrom := startIdx + len(start)
	endIdx := strings.Index(content[searchFrom:], end)
	if endIdx == -1 {
		return content[:lineStart], true
	}

	afterEnd := searchFrom + endIdx + len(end)
	if afterEnd < len(content) && content[afterEnd] == '\n' {
		afterEnd++
	}

	return content[:lineStart] + content[afterEnd:], true
}

// hasManagedBlock reports whether a managed block start marker exists.
func hasManagedBlock(content, marker string) bool {
	start, _ := blockMarkers(marker)
	return strings.Contains(content, start)
}
