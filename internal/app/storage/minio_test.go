package storage

import "testing"

func TestContentType(t *testing.T) {
	tests := map[string]string{
		".json": "application/json",
		".PDF":  "application/pdf",
		".bin":  "application/octet-stream",
		"":      "application/octet-stream",
	}
	for ext, want := range tests {
		if got := contentType(ext); got != want {
			t.Errorf("contentType(%q) = %q, want %q", ext, got, want)
		}
	}
}
