// Package formula parses formula templates and materializes them into
// immutable, fully-resolved descriptors.
//
// # Formats
//
// A formula is written either as sandboxed Lua or as YAML. The Lua form uses a
// global `formula` table and a read-only `on` table of predicate helpers:
//
//	formula = {
//	  name     = "into-docker",
//	  desc     = "Never write another Dockerfile",
//	  homepage = "https://github.com/into-docker/into-docker",
//	  version  = "${HOMEBREW_VERSION}",
//	  bin      = "into",
//	  artifacts = {
//	    on.linux   { url = "${HOMEBREW_ASSET_URL_ALT}", sha256 = "${HOMEBREW_SHA256_ALT}" },
//	    on.default { url = "${HOMEBREW_ASSET_URL}",     sha256 = "${HOMEBREW_SHA256}" },
//	  },
//	}
//
// Artifacts are evaluated in declaration order and the first whose predicate
// matches wins, so the catch-all must come last.
//
// # Materialization
//
// Parsing yields a Template whose strings may still contain ${NAME}
// placeholders. Materialize substitutes them from Vars and returns a
// Descriptor. Placeholders without a value are left in place and reported;
// the installer refuses to download from a URL that still contains one.
//
// # Sandbox
//
// Lua formulas run with os, io, debug and every code-loading function
// removed, a bounded call stack, and a deadline (5s unless the context
// carries one).
package formula
