package formula

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	"gopkg.in/yaml.v3"
)

// yamlFormula represents the raw YAML structure.
type yamlFormula struct {
	Name      string         `yaml:"name"`
	Desc      string         `yaml:"desc"`
	Homepage  string         `yaml:"homepage"`
	Version   string         `yaml:"version"`
	Bin       string         `yaml:"bin"`
	Artifacts []yamlArtifact `yaml:"artifacts"`
}

type yamlArtifact struct {
	When      yamlWhen `yaml:"when"`
	URL       string   `yaml:"url"`
	SHA256    string   `yaml:"sha256"`
	Format    string   `yaml:"format"`
	Signature string   `yaml:"signature"`
}

type yamlWhen struct {
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`
}

// ParseYAML parses a YAML formula.
//
//	name: into-docker
//	bin: into
//	version: ${HOMEBREW_VERSION}
//	artifacts:
//	  - when: {os: linux}
//	    url: ${HOMEBREW_ASSET_URL_ALT}
//	    sha256: ${HOMEBREW_SHA256_ALT}
//	  - url: ${HOMEBREW_ASSET_URL}
//	    sha256: ${HOMEBREW_SHA256}
func (p *Parser) ParseYAML(data []byte) (*Template, error) {
	if len(data) > MaxFormulaSize {
		return nil, &ParseError{
			Message: "formula too large",
			Detail:  fmt.Sprintf("%d bytes, maximum is %d", len(data), MaxFormulaSize),
		}
	}

	var raw yamlFormula
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: "YAML syntax error", Detail: err.Error()}
	}

	t := &Template{
		Name:        raw.Name,
		Description: raw.Desc,
		Homepage:    raw.Homepage,
		Version:     raw.Version,
		Binary:      raw.Bin,
	}

	for i, ra := range raw.Artifacts {
		a := Artifact{
			URL:          ra.URL,
			Checksum:     ra.SHA256,
			Algorithm:    SHA256,
			SignatureURL: ra.Signature,
		}
		if ra.When.OS != "" {
			family, err := platform.ParseOSFamily(ra.When.OS)
			if err != nil {
				return nil, &ParseError{Message: "invalid artifact", Detail: fmt.Sprintf("artifacts[%d]: %v", i+1, err)}
			}
			a.When.OS = family
		}
		a.When.Arch = ra.When.Arch

		format, err := ParseArtifactFormat(ra.Format)
		if err != nil {
			return nil, &ParseError{Message: "invalid artifact", Detail: fmt.Sprintf("artifacts[%d]: %v", i+1, err)}
		}
		a.Format = format

		t.Artifacts = append(t.Artifacts, a)
	}

	if err := (*Descriptor)(t).Validate(); err != nil {
		return nil, &ParseError{Message: "formula validation failed", Detail: err.Error()}
	}

	p.logger.Debug("parsed YAML formula", "name", t.Name, "artifacts", len(t.Artifacts))

	return t, nil
}
