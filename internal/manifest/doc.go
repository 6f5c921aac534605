// Package manifest reads, selects from, and rewrites the asset list
// (assets/meta/asset-list.json). The asset list is the single source of
// truth for which station assets exist and where each one is in its
// generation lifecycle: planned, then complete or failed.
//
// Documents are validated against an embedded JSON Schema on load, keep any
// keys this package does not model, and are saved atomically.
package manifest
