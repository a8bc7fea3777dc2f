// Package warning renders the page a blocked tab is redirected to.
//
// Renderer.Load reads the blocked analysis slot once and clears it, so a
// reload shows the "no data" state instead of replaying the verdict. The
// resulting View is never blank: missing data and read failures have
// fixed fallback texts. GoBack implements the page's go-back control.
//
// The View can be written as the HTML warning page, as plain text for a
// terminal, or as Markdown.
package warning
