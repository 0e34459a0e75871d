// Package wire is the msgpack codec of the invocation protocol: a host
// sends one Request holding a token tree and receives one Response with
// the expanded tree or the diagnostics that stopped it.
package wire
