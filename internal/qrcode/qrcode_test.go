package qrcode

import (
	"bytes"
	"testing"
)

func TestSpectatorURL(t *testing.T) {
	got := SpectatorURL("http://192.168.1.10:8080/", "abc")
	want := "http://192.168.1.10:8080/api/tables/abc/state"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGeneratePNG(t *testing.T) {
	png, err := Generate(SpectatorURL("http://localhost:8080", "abc"), 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("expected PNG signature")
	}
}
