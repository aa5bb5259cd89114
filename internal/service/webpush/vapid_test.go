package webpush

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureKeysExplicitWins(t *testing.T) {
	keys, err := EnsureKeys(KeySource{Public: "pub", Private: "priv"})
	if err != nil {
		t.Fatal(err)
	}
	if keys.Public != "pub" || keys.Private != "priv" {
		t.Fatalf("keys = %+v", keys)
	}
}

func TestEnsureKeysReadsFiles(t *testing.T) {
	dir := t.TempDir()
	pubFile := filepath.Join(dir, "pub.txt")
	privFile := filepath.Join(dir, "priv.txt")
	os.WriteFile(pubFile, []byte("filepub\n"), 0o644)
	os.WriteFile(privFile, []byte("filepriv\n"), 0o600)

	keys, err := EnsureKeys(KeySource{PublicKeyFile: pubFile, PrivateKeyFile: privFile})
	if err != nil {
		t.Fatal(err)
	}
	if keys.Public != "filepub" || keys.Private != "filepriv" {
		t.Fatalf("keys = %+v", keys)
	}
}

func TestEnsureKeysGeneratesAndPersists(t *testing.T) {
	dir := t.TempDir()
	src := KeySource{
		PublicKeyFile:  filepath.Join(dir, "pub.txt"),
		PrivateKeyFile: filepath.Join(dir, "priv.txt"),
	}
	keys, err := EnsureKeys(src)
	if err != nil {
		t.Fatal(err)
	}
	if keys.Public == "" || keys.Private == "" {
		t.Fatalf("generated keys are empty: %+v", keys)
	}

	// A second call loads the persisted pair.
	again, err := EnsureKeys(src)
	if err != nil {
		t.Fatal(err)
	}
	if again != keys {
		t.Fatalf("keys changed across restarts: %+v vs %+v", again, keys)
	}
}
