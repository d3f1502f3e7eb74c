package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/internal/platform/identity"
)

func TestDeriveCommandPrintsFingerprints(t *testing.T) {
	cmd := DeriveCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--batch-id", "7", "--serial", "SN-1", "SN-2"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	want := "SN-1\t" + entities.DeriveFingerprint(7, "SN-1").Hex()
	if lines[0] != want {
		t.Fatalf("expected %q, got %q", want, lines[0])
	}
}

func TestDeriveCommandWritesLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.png")
	cmd := DeriveCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--batch-id", "1", "--serial", "SN-1", "--label", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read label: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}
}

func TestDeriveCommandRejectsZeroBatch(t *testing.T) {
	cmd := DeriveCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--serial", "SN-1"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing batch id")
	}
}

func TestTokenCommandIssuesVerifiableToken(t *testing.T) {
	const address = "0x1111111111111111111111111111111111111111"
	cmd := TokenCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--address", address, "--secret", "s3cret"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	claims, err := identity.ValidateToken(strings.TrimSpace(out.String()), "s3cret")
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if sub, _ := claims.GetSubject(); sub != address {
		t.Fatalf("expected subject %s, got %s", address, sub)
	}
}
