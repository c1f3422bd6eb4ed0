// Package app wires configuration, logging, and the INI document lookup
// together, making the main package cleaner and more focused on CLI parsing
// and exit-code handling.
package app
