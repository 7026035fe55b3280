// Package tasks orchestrates discovery operations over the catalog and the rating store.
//
// # Core Operations
//
// The [DiscoveryEngine] joins the two halves of the application:
//
//  1. [DiscoveryEngine.Recommendations] : Genre discovery feed
//     - Searches the catalog with the genre fallback tiers
//     - Looks up the signed-in user's ratings for the returned songs
//     - Annotates each song with the user's current judgment, if any
//
//  2. [DiscoveryEngine.ExportHistory] : Rating history export
//     - Fetches the user's full history, newest feedback first
//     - Renders it as JSON, CSV, Markdown or plain text
//     - Writes a metadata summary alongside the export
//
// # Degradation
//
// Annotation is best-effort: a rating lookup failure logs a warning and the
// feed renders unannotated rather than failing the whole screen. An anonymous
// session skips the lookup entirely.
package tasks
