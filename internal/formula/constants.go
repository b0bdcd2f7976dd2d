package formula

import "time"

// Lua and YAML schema field names.
const (
	luaGlobalFormula = "formula"
	luaGlobalOn      = "on"

	fieldName      = "name"
	fieldDesc      = "desc"
	fieldHomepage  = "homepage"
	fieldVersion   = "version"
	fieldBin       = "bin"
	fieldArtifacts = "artifacts"
	fieldURL       = "url"
	fieldSHA256    = "sha256"
	fieldOS        = "os"
	fieldArch      = "arch"
	fieldFormat    = "format"
	fieldSignature = "signature"
)

const (
	// MaxFormulaSize bounds the size of a formula source file.
	MaxFormulaSize = 1 << 20
	// MaxArtifacts bounds the number of artifact variants in one formula.
	MaxArtifacts = 64
	// DefaultParseTimeout applies when the caller's context has no deadline.
	DefaultParseTimeout = 5 * time.Second
)
