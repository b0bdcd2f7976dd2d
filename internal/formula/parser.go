package formula

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZebulonRouseFrantzich/pour/internal/logging"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser reads formula templates from Lua or YAML sources.
type Parser struct {
	logger logging.Logger
}

// NewParser creates a new formula parser.
func NewParser() *Parser {
	return &Parser{logger: logging.Noop()}
}

// WithLogger sets the logger used for parse diagnostics.
func (p *Parser) WithLogger(l logging.Logger) *Parser {
	p.logger = logging.OrNoop(l)
	return p
}

// ParseFile parses a formula file. Files ending in .yaml or .yml are read
// as YAML; everything else is treated as Lua.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Template, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat formula: %w", err)
	}
	if info.Size() > MaxFormulaSize {
		return nil, &ParseError{
			Message: "formula too large",
			Detail:  fmt.Sprintf("%s is %d bytes, maximum is %d", path, info.Size(), MaxFormulaSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formula: %w", err)
	}

	p.logger.Debug("parsing formula", "path", path, "bytes", len(data))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return p.ParseYAML(data)
	default:
		return p.ParseString(ctx, string(data))
	}
}

// ParseString parses a Lua formula from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Template, error) {
	if len(luaCode) > MaxFormulaSize {
		return nil, &ParseError{
			Message: "formula too large",
			Detail:  fmt.Sprintf("%d bytes, maximum is %d", len(luaCode), MaxFormulaSize),
		}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultParseTimeout)
		defer cancel()
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	injectOnTable(L)

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, &ParseError{Message: "formula evaluation timed out", Detail: ctx.Err().Error()}
		}
		return nil, &ParseError{Message: "Lua syntax error", Detail: err.Error()}
	}

	t, err := extractTemplate(L)
	if err != nil {
		return nil, err
	}

	if err := (*Descriptor)(t).Validate(); err != nil {
		return nil, &ParseError{Message: "formula validation failed", Detail: err.Error()}
	}

	return t, nil
}

// extractTemplate reads the global `formula` table.
func extractTemplate(L *lua.LState) (*Template, error) {
	global := L.GetGlobal(luaGlobalFormula)
	table, ok := global.(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid 'formula' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}

	t := &Template{
		Name:        stringField(table, fieldName),
		Description: stringField(table, fieldDesc),
		Homepage:    stringField(table, fieldHomepage),
		Version:     stringField(table, fieldVersion),
		Binary:      stringField(table, fieldBin),
	}

	artifactsVal, ok := table.RawGetString(fieldArtifacts).(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid 'artifacts' list",
			Detail:  fmt.Sprintf("expected table, got %s", table.RawGetString(fieldArtifacts).Type()),
		}
	}

	for i, entry := range orderedEntries(artifactsVal) {
		entryTable, ok := entry.(*lua.LTable)
		if !ok {
			return nil, &ParseError{
				Message: "invalid artifact",
				Detail:  fmt.Sprintf("artifacts[%d]: expected table, got %s", i+1, entry.Type()),
			}
		}
		a, err := extractArtifact(entryTable)
		if err != nil {
			return nil, &ParseError{
				Message: "invalid artifact",
				Detail:  fmt.Sprintf("artifacts[%d]: %v", i+1, err),
			}
		}
		t.Artifacts = append(t.Artifacts, a)
	}

	return t, nil
}

// orderedEntries returns the array part of table in index order. Nil holes
// left by conditionals such as `cond and on.linux{...} or nil` are skipped.
func orderedEntries(table *lua.LTable) []lua.LValue {
	var keys []int
	values := map[int]lua.LValue{}
	table.ForEach(func(key, value lua.LValue) {
		n, ok := key.(lua.LNumber)
		if !ok || value == lua.LNil {
			return
		}
		keys = append(keys, int(n))
		values[int(n)] = value
	})
	sort.Ints(keys)

	out := make([]lua.LValue, 0, len(keys))
	for _, k := range keys {
		out = append(out, values[k])
	}
	return out
}

func extractArtifact(table *lua.LTable) (Artifact, error) {
	a := Artifact{
		URL:          stringField(table, fieldURL),
		Checksum:     stringField(table, fieldSHA256),
		Algorithm:    SHA256,
		SignatureURL: stringField(table, fieldSignature),
	}

	if osName := stringField(table, fieldOS); osName != "" {
		family, err := platform.ParseOSFamily(osName)
		if err != nil {
			return Artifact{}, err
		}
		a.When.OS = family
	}
	a.When.Arch = stringField(table, fieldArch)

	format, err := ParseArtifactFormat(stringField(table, fieldFormat))
	if err != nil {
		return Artifact{}, err
	}
	a.Format = format

	return a, nil
}

// stringField reads a string field. Numbers are accepted so that
// `version = 1.2` behaves like `version = "1.2"`.
func stringField(table *lua.LTable, name string) string {
	switch v := table.RawGetString(name).(type) {
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return v.String()
	default:
		return ""
	}
}
