// Package generator invokes the external process that produces one station
// asset. Two runtimes are supported: "blender" runs a generator script
// inside a headless Blender (blender -b -P script -- args), and "exec" runs
// the generator directly as an executable. Dispatch selects one based on
// configuration.
package generator
