// Package host models the browser environment SafeLink runs against.
//
// Tabs, Resources and History are the collaborators the inspection pipeline
// and the warning renderer need from the host: tab lookup and redirection,
// resolution of bundled page names to loadable URLs, and per-tab session
// history.
//
// Browser is an in-memory implementation of all three. It keeps a session
// history per tab and publishes a loading and a complete NavigationEvent for
// every navigation, including redirects and history traversal, on the
// channel returned by Events.
package host
