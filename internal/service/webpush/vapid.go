package webpush

import (
	"fmt"
	"os"
	"strings"

	wp "github.com/SherClockHolmes/webpush-go"
)

// VAPIDKeys is the signing key pair used for Web Push authentication.
type VAPIDKeys struct {
	Public  string
	Private string
}

// KeySource names where keys are loaded from, in priority order:
// explicit values (config or env), key files, or a freshly generated pair
// persisted to the key files.
type KeySource struct {
	Public         string
	Private        string
	PublicKeyFile  string
	PrivateKeyFile string
}

// EnsureKeys resolves the VAPID key pair. A generated pair is written to the
// configured key files so restarts keep the same identity.
func EnsureKeys(src KeySource) (VAPIDKeys, error) {
	if src.Public != "" && src.Private != "" {
		return VAPIDKeys{Public: src.Public, Private: src.Private}, nil
	}

	pub, errPub := readKeyFile(src.PublicKeyFile)
	priv, errPriv := readKeyFile(src.PrivateKeyFile)
	if errPub == nil && errPriv == nil && pub != "" && priv != "" {
		return VAPIDKeys{Public: pub, Private: priv}, nil
	}

	priv, pub, err := wp.GenerateVAPIDKeys()
	if err != nil {
		return VAPIDKeys{}, fmt.Errorf("generate vapid keys: %w", err)
	}
	if err := os.WriteFile(src.PrivateKeyFile, []byte(priv), 0o600); err != nil {
		return VAPIDKeys{}, fmt.Errorf("persist private key: %w", err)
	}
	if err := os.WriteFile(src.PublicKeyFile, []byte(pub), 0o644); err != nil {
		return VAPIDKeys{}, fmt.Errorf("persist public key: %w", err)
	}
	return VAPIDKeys{Public: pub, Private: priv}, nil
}

func readKeyFile(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
