// Package inifile parses INI-formatted configuration files and resolves
// single (section, key) lookups. A synthetic top-level section header is
// prepended to the input stream before parsing, so key/value pairs that
// appear before any explicit [section] line are addressable under a reserved
// name (DefaultTopSection by default) instead of being rejected by the parser.
package inifile
