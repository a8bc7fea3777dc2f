// Package classifier is the HTTP client of the URL classification service.
//
// The service receives {"url": "..."} as a JSON POST and answers with
// {"is_malicious": bool, "threat_report": [...]}. The client issues exactly
// one request per call and never retries. Failures are returned as
// *NetworkError or *ServerError so callers can tell an unreachable service
// from one that answered badly.
package classifier
