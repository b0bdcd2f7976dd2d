package platform

import "testing"

func TestMatcher_Matches(t *testing.T) {
	linuxAMD := &Info{OS: "linux", Arch: "amd64", ArchRaw: "amd64"}
	darwinARM := &Info{OS: "darwin", Arch: "arm64", ArchRaw: "arm64"}
	windows := &Info{OS: "windows", Arch: "amd64", ArchRaw: "amd64"}

	tests := []struct {
		name    string
		matcher Matcher
		info    *Info
		want    bool
	}{
		{"default matches linux", Matcher{}, linuxAMD, true},
		{"default matches windows", Matcher{}, windows, true},
		{"linux matches linux", Matcher{OS: OSLinux}, linuxAMD, true},
		{"linux rejects darwin", Matcher{OS: OSLinux}, darwinARM, false},
		{"darwin matches darwin", Matcher{OS: OSDarwin}, darwinARM, true},
		{"other matches windows", Matcher{OS: OSOther}, windows, true},
		{"other rejects linux", Matcher{OS: OSOther}, linuxAMD, false},
		{"arch alias aarch64", Matcher{Arch: "aarch64"}, darwinARM, true},
		{"arch alias x86_64", Matcher{OS: OSLinux, Arch: "x86_64"}, linuxAMD, true},
		{"arch mismatch", Matcher{OS: OSLinux, Arch: "arm64"}, linuxAMD, false},
		{"nil snapshot", Matcher{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher.Matches(tt.info); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatcher_String(t *testing.T) {
	tests := []struct {
		matcher Matcher
		want    string
	}{
		{Matcher{}, "default"},
		{Matcher{OS: OSLinux}, "os=linux"},
		{Matcher{Arch: "arm64"}, "arch=arm64"},
		{Matcher{OS: OSDarwin, Arch: "arm64"}, "os=darwin,arch=arm64"},
	}

	for _, tt := range tests {
		if got := tt.matcher.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseOSFamily(t *testing.T) {
	tests := []struct {
		input   string
		want    OSFamily
		wantErr bool
	}{
		{"linux", OSLinux, false},
		{"Linux", OSLinux, false},
		{"darwin", OSDarwin, false},
		{"macos", OSDarwin, false},
		{"other", OSOther, false},
		{"windows", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOSFamily(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOSFamily() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOSFamily() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFamilyOf(t *testing.T) {
	if FamilyOf("linux") != OSLinux || FamilyOf("darwin") != OSDarwin {
		t.Error("linux and darwin must map to their own families")
	}
	for _, goos := range []string{"windows", "freebsd", "openbsd", ""} {
		if FamilyOf(goos) != OSOther {
			t.Errorf("FamilyOf(%q) = %v, want other", goos, FamilyOf(goos))
		}
	}
}
