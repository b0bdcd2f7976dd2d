package formula

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/pour/internal/platform"
)

func TestGenerator_RoundTrip(t *testing.T) {
	d := &Descriptor{
		Name:        "into-docker",
		Description: `Never write another "Dockerfile"`,
		Homepage:    "https://github.com/into-docker/into-docker",
		Version:     "1.1.0",
		Binary:      "into",
		Artifacts: []Artifact{
			{
				When:      platform.Matcher{OS: platform.OSLinux, Arch: "amd64"},
				URL:       "https://h/into-linux.tar.gz",
				Checksum:  sumA,
				Algorithm: SHA256,
				Format:    FormatTarGz,
			},
			{
				When:         platform.Matcher{OS: platform.OSDarwin},
				URL:          "https://h/into-macos",
				Checksum:     sumB,
				Algorithm:    SHA256,
				SignatureURL: "https://h/into-macos.asc",
			},
			{URL: "https://h/into", Checksum: sumB, Algorithm: SHA256, Format: FormatBinary},
		},
	}

	src, err := NewGenerator().Generate(d)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for _, want := range []string{"on.linux {", "on.darwin {", "on.default {", `\"Dockerfile\"`} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q:\n%s", want, src)
		}
	}

	tmpl, err := NewParser().ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseString() of generated source error = %v\n%s", err, src)
	}
	if got := (*Descriptor)(tmpl); !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, d)
	}
}

func TestGenerator_RejectsInvalid(t *testing.T) {
	if _, err := NewGenerator().Generate(nil); err == nil {
		t.Error("expected error for nil descriptor")
	}
	if _, err := NewGenerator().Generate(&Descriptor{Name: "x"}); err == nil {
		t.Error("expected validation error")
	}
}

func TestGenerator_QuoteLuaString(t *testing.T) {
	g := NewGenerator()
	tests := map[string]string{
		"plain":        `"plain"`,
		`back\slash`:   `"back\\slash"`,
		"tab\tnewline\n": `"tab\tnewline\n"`,
	}
	for input, want := range tests {
		if got := g.quoteLuaString(input); got != want {
			t.Errorf("quoteLuaString(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestGenerator_MultiLineName(t *testing.T) {
	d := &Descriptor{
		Name:      "into\ndocker\r\nx",
		Binary:    "into",
		Artifacts: []Artifact{{URL: "https://h/into", Checksum: sumA, Algorithm: SHA256}},
	}

	src, err := NewGenerator().Generate(d)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first := strings.SplitN(src, "\n", 2)[0]; first != "-- pour formula: into docker x" {
		t.Errorf("header line = %q", first)
	}

	tmpl, err := NewParser().ParseString(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseString() of generated source error = %v\n%s", err, src)
	}
	if tmpl.Name != d.Name {
		t.Errorf("Name = %q, want %q", tmpl.Name, d.Name)
	}
}
