// Package app contains the application lifecycle: configuration, an isolated
// logger, the discovery container, and the readiness endpoint, decoupled from
// any specific entrypoint like a CLI.
package app
