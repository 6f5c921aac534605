// Package platform provides cross-platform filesystem helpers. Permission
// changes are skipped on Windows, which has no Unix-style mode bits.
package platform
