// Package inspect runs the handling of one navigation as an ordered
// pipeline of steps.
//
// The standard pipeline classifies the URL, stores a malicious verdict in
// the blocked analysis slot and redirects the tab to the warning page:
//
//	classify -> persist -> redirect
//
// Every step records a discrete model.Outcome on the inspection when it
// ends the flow. Errors never leave the pipeline; they are logged and
// surface only as outcomes. A failure to obtain a verdict lets the
// navigation proceed (fail-open).
//
// Batch runs one pipeline over many URLs with bounded concurrency,
// which is what the check command uses.
package inspect
