// Package report writes inspection results for the check and run commands.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: JSON for tool integration, or one object per line
//   - MarkdownWriter: GitHub-flavored Markdown for sharing
//
// Writers implement the Writer interface so commands can choose the format
// at runtime.
package report
