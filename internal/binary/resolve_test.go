package binary

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
	"pgregory.net/rapid"
)

func TestResolve(t *testing.T) {
	sumA := strings.Repeat("a", 64)
	sumB := strings.Repeat("b", 64)
	d := twoVariantDescriptor("https://host/pkg-linux.tgz", sumA, "https://host/pkg.tgz", sumB)

	tests := []struct {
		name    string
		info    *platform.Info
		wantURL string
	}{
		{name: "linux selects first", info: linuxAMD64, wantURL: "https://host/pkg-linux.tgz"},
		{name: "darwin falls through to default", info: darwinARM64, wantURL: "https://host/pkg.tgz"},
		{name: "other falls through to default", info: windowsAMD, wantURL: "https://host/pkg.tgz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(d, tt.info)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.URL != tt.wantURL {
				t.Errorf("Resolve() URL = %q, want %q", got.URL, tt.wantURL)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	d := &formula.Descriptor{
		Name:   "tool",
		Binary: "tool",
		Artifacts: []formula.Artifact{
			{When: platform.Matcher{OS: platform.OSLinux}, URL: "https://h/linux"},
			{When: platform.Matcher{OS: platform.OSDarwin, Arch: "amd64"}, URL: "https://h/darwin-amd64"},
		},
	}

	_, err := Resolve(d, darwinARM64)
	if !errors.Is(err, ErrNoMatchingArtifact) {
		t.Fatalf("expected ErrNoMatchingArtifact, got %v", err)
	}

	var noMatch *NoMatchingArtifactError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected *NoMatchingArtifactError, got %T", err)
	}
	if noMatch.Formula != "tool" || noMatch.Platform != "darwin/arm64" {
		t.Errorf("unexpected error fields: %+v", noMatch)
	}

	if _, err := Resolve(d, nil); !errors.Is(err, ErrNoMatchingArtifact) {
		t.Errorf("nil platform should not match, got %v", err)
	}
	if _, err := Resolve(nil, linuxAMD64); !errors.Is(err, ErrNoMatchingArtifact) {
		t.Errorf("nil descriptor should not match, got %v", err)
	}
}

func TestResolve_FirstMatchProperty(t *testing.T) {
	oses := []platform.OSFamily{"", platform.OSLinux, platform.OSDarwin, platform.OSOther}
	arches := []string{"", "amd64", "arm64", "x86_64"}
	goos := []string{"linux", "darwin", "windows", "freebsd"}
	goarch := []string{"amd64", "arm64", "386"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "artifacts")
		d := &formula.Descriptor{Name: "prop", Binary: "prop"}
		for i := 0; i < n; i++ {
			d.Artifacts = append(d.Artifacts, formula.Artifact{
				When: platform.Matcher{
					OS:   rapid.SampledFrom(oses).Draw(rt, "os"),
					Arch: rapid.SampledFrom(arches).Draw(rt, "arch"),
				},
				URL: fmt.Sprintf("https://h/%d", i),
			})
		}
		info := &platform.Info{
			OS:   rapid.SampledFrom(goos).Draw(rt, "goos"),
			Arch: rapid.SampledFrom(goarch).Draw(rt, "goarch"),
		}

		got, err := Resolve(d, info)

		first := -1
		for i, a := range d.Artifacts {
			if a.When.Matches(info) {
				first = i
				break
			}
		}

		if first < 0 {
			if !errors.Is(err, ErrNoMatchingArtifact) {
				rt.Fatalf("expected ErrNoMatchingArtifact, got %v", err)
			}
			return
		}
		if err != nil {
			rt.Fatalf("Resolve() error = %v", err)
		}
		if got.URL != d.Artifacts[first].URL {
			rt.Fatalf("Resolve() = %s, want first match %s", got.URL, d.Artifacts[first].URL)
		}
	})
}
