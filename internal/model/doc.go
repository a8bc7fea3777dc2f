// Package model defines the data types shared by SafeLink components.
//
// The types fall into two groups:
//   - Request-scoped values: NavigationEvent, AnalysisRequest,
//     AnalysisResponse and Inspection. They are created and discarded while
//     handling a single navigation.
//   - BlockedAnalysisRecord, the only value with a cross-component lifetime.
//     It is written by the inspection pipeline and consumed once by the
//     warning renderer through the shared storage slot.
package model
