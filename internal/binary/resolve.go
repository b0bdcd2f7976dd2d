package binary

import (
	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

// Resolve returns the first artifact of d, in declaration order, whose
// predicate matches info. It performs no I/O.
func Resolve(d *formula.Descriptor, info *platform.Info) (formula.Artifact, error) {
	name := ""
	if d != nil {
		name = d.Name
		for _, a := range d.Artifacts {
			if a.When.Matches(info) {
				return a, nil
			}
		}
	}

	plat := "<unknown>"
	if info != nil {
		plat = info.String()
	}
	return formula.Artifact{}, &NoMatchingArtifactError{Formula: name, Platform: plat}
}
