// Package deps verifies that the external binaries the scan pipeline shells
// out to are present before work begins.
package deps
