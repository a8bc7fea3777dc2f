// Package monitor watches navigation events and inspects every completed
// navigation to a web page.
//
// Accept filters events in a fixed order: the load must be complete, the
// event must name a tab and a URL, the URL must be http or https, and it
// must not be the warning page itself. Accepted events run the inspection
// pipeline in their own goroutine. Repeated complete events for the same
// tab each trigger a request unless in-flight deduplication is enabled.
package monitor
