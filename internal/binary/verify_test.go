package binary

import (
	"errors"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/pour/internal/formula"
	"pgregory.net/rapid"
)

func TestVerify(t *testing.T) {
	data := []byte("test binary content")
	digest := Digest(data)

	tests := []struct {
		name     string
		checksum string
		wantErr  bool
	}{
		{name: "matching", checksum: digest},
		{name: "matching_uppercase", checksum: strings.ToUpper(digest)},
		{name: "mismatch", checksum: strings.Repeat("0", 64), wantErr: true},
		{name: "empty", checksum: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := formula.Artifact{URL: "https://h/a", Checksum: tt.checksum, Algorithm: formula.SHA256}
			got, err := Verify(data, a)

			if tt.wantErr {
				if !errors.Is(err, ErrChecksumMismatch) {
					t.Fatalf("expected ErrChecksumMismatch, got %v", err)
				}
				var mismatch *ChecksumMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("expected *ChecksumMismatchError, got %T", err)
				}
				if mismatch.Actual != digest {
					t.Errorf("Actual = %s, want %s", mismatch.Actual, digest)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != string(data) {
				t.Error("Verify() must return the input bytes unchanged")
			}
		})
	}
}

func TestVerify_UnsupportedAlgorithm(t *testing.T) {
	_, err := Verify([]byte("x"), formula.Artifact{Checksum: Digest([]byte("x")), Algorithm: "md5"})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch for unsupported algorithm, got %v", err)
	}
}

func TestDigest(t *testing.T) {
	// sha256("") is a well-known constant.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Digest(nil); got != empty {
		t.Errorf("Digest(nil) = %s, want %s", got, empty)
	}
}

func TestVerify_CorruptionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(rt, "data")
		a := formula.Artifact{URL: "https://h/p", Checksum: Digest(data), Algorithm: formula.SHA256}

		if _, err := Verify(data, a); err != nil {
			rt.Fatalf("Verify() of untouched bytes failed: %v", err)
		}

		idx := rapid.IntRange(0, len(data)-1).Draw(rt, "index")
		mask := rapid.ByteRange(1, 255).Draw(rt, "mask")
		corrupted := append([]byte(nil), data...)
		corrupted[idx] ^= mask

		if _, err := Verify(corrupted, a); !errors.Is(err, ErrChecksumMismatch) {
			rt.Fatalf("Verify() of corrupted bytes = %v, want ErrChecksumMismatch", err)
		}
	})
}
