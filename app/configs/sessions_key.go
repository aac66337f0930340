package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/pkg/errors"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func (k *SessionKeys) Pairs() [][]byte {
	return [][]byte{k.AuthKey, k.EncKey}
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, errors.New("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, errors.New("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode APP_AUTH_KEY")
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode APP_ENC_KEY")
	}

	if len(authKey) < 32 {
		return nil, fmt.Errorf("APP_AUTH_KEY decodes to %d bytes, need at least 32", len(authKey))
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY decodes to %d bytes, must be 16, 24 or 32 for AES", len(encKey))
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// GenerateSessionKeys returns base64 values ready for APP_AUTH_KEY and APP_ENC_KEY.
func GenerateSessionKeys() (authKey, encKey string, err error) {
	auth := securecookie.GenerateRandomKey(64)
	if auth == nil {
		return "", "", errors.New("could not generate authentication key")
	}
	enc := securecookie.GenerateRandomKey(32)
	if enc == nil {
		return "", "", errors.New("could not generate encryption key")
	}
	return base64.URLEncoding.EncodeToString(auth), base64.URLEncoding.EncodeToString(enc), nil
}

// WriteSessionKeys prints fresh keys to out and, when path is set, also
// writes them there as env lines.
func WriteSessionKeys(out io.Writer, path string) error {
	authKey, encKey, err := GenerateSessionKeys()
	if err != nil {
		return err
	}

	lines := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", authKey, encKey)
	fmt.Fprint(out, lines)

	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		return errors.Wrapf(err, "write keys to %s", path)
	}
	fmt.Fprintf(out, "Keys written to %s. Regenerating them invalidates existing admin sessions.\n", path)
	return nil
}
