// Package cmd implements owctl, the command-line interface of the OpenWire
// client. It provides commands to inspect the wire encoding offline and to
// talk to a broker.
//
// The package is organized into several subpackages:
//
//   - encode: Encodes a TOML command script into frames and verifies the round trip
//   - probe: Connects to a broker, sends requests and measures round trips
//   - serve: Runs a minimal OpenWire peer that answers every request (for testing)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// All flags can also be set as environment variables with the OWIRE_ prefix
// (e.g. OWIRE_CONNECT_TIMEOUT=500), loaded from .env and .env.local if present.
//
// See owctl -help for a list of all commands.
package cmd
