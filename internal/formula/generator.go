package formula

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

// Generator renders descriptors back into Lua formula source.
type Generator struct {
	indent string
}

// NewGenerator creates a new Lua formula generator.
func NewGenerator() *Generator {
	return &Generator{indent: "  "}
}

// Generate renders d as a Lua formula that ParseString accepts.
func (g *Generator) Generate(d *Descriptor) (string, error) {
	if d == nil {
		return "", fmt.Errorf("descriptor is nil")
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer

	buf.WriteString("-- pour formula: ")
	buf.WriteString(commentSafe(d.Name))
	buf.WriteString("\n\n")
	buf.WriteString(luaGlobalFormula)
	buf.WriteString(" = {\n")

	g.writeField(&buf, 1, fieldName, d.Name)
	g.writeField(&buf, 1, fieldDesc, d.Description)
	g.writeField(&buf, 1, fieldHomepage, d.Homepage)
	g.writeField(&buf, 1, fieldVersion, d.Version)
	g.writeField(&buf, 1, fieldBin, d.Binary)

	buf.WriteString(g.indent)
	buf.WriteString(fieldArtifacts)
	buf.WriteString(" = {\n")
	for _, a := range d.Artifacts {
		g.writeArtifact(&buf, a)
	}
	buf.WriteString(g.indent)
	buf.WriteString("},\n")

	buf.WriteString("}\n")

	return buf.String(), nil
}

func (g *Generator) writeArtifact(buf *bytes.Buffer, a Artifact) {
	prefix := strings.Repeat(g.indent, 2)

	buf.WriteString(prefix)
	buf.WriteString(helperFor(a.When.OS))
	buf.WriteString(" {\n")

	g.writeField(buf, 3, fieldURL, a.URL)
	g.writeField(buf, 3, fieldSHA256, a.Checksum)
	g.writeField(buf, 3, fieldArch, a.When.Arch)
	g.writeField(buf, 3, fieldFormat, string(a.Format))
	g.writeField(buf, 3, fieldSignature, a.SignatureURL)

	buf.WriteString(prefix)
	buf.WriteString("},\n")
}

func helperFor(family platform.OSFamily) string {
	if family == "" {
		return luaGlobalOn + ".default"
	}
	return luaGlobalOn + "." + string(family)
}

// commentSafe flattens line breaks so s fits on one comment line.
func commentSafe(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// writeField writes `name = "value",` at the given depth; empty values are skipped.
func (g *Generator) writeField(buf *bytes.Buffer, depth int, name, value string) {
	if value == "" {
		return
	}
	buf.WriteString(strings.Repeat(g.indent, depth))
	buf.WriteString(name)
	buf.WriteString(" = ")
	buf.WriteString(g.quoteLuaString(value))
	buf.WriteString(",\n")
}

// quoteLuaString quotes a string for Lua, handling special characters.
func (g *Generator) quoteLuaString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\") // backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return "\"" + s + "\""
}
