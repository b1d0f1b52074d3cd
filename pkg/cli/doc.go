// Package cli implements the command-line interface for the goldenpath tool.
//
// # Commands
//
// generate - Derive a manifest bundle from declarative intent:
//
//	goldenpathctl generate --name payments --lang java --rps 100 --latency 200 --tier prod \
//	    --image registry.local/payments --output ./output
//	goldenpathctl generate --name payments --lang go --output -   # stdout
//
// languages - List supported language profiles:
//
//	goldenpathctl languages [--format yaml|json]
//
// serve - Run the derivation engine as an HTTP API:
//
//	goldenpathctl serve
//
// The CLI is a thin wrapper: all derivation logic lives in pkg/bundle and the
// packages beneath it.
package cli
