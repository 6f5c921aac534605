// Package metadata validates the per-asset metadata documents that the
// generator writes next to each GLB artifact.
//
// A document is checked against an externally supplied JSON Schema and
// against the artifact it describes:
//
//  1. Schema validation
//  2. GLB file exists
//  3. File size matches
//  4. Required fields
//
// All four checks always run, in that order, and each is reported on its own.
package metadata
