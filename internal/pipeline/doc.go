// Package pipeline drives batch generation of the assets listed in the
// asset list. It selects eligible assets, runs the generator for each one
// sequentially, records the outcome on the asset, and rewrites the asset list
// once the whole batch has finished.
package pipeline
