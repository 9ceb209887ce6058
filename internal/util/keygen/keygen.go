package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an SSH key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the private key in PEM-encoded OpenSSH format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateED25519KeyPair generates a new ed25519 SSH key pair. The
// comment is embedded in the private key and appended to the public key
// line, matching ssh-keygen output.
func GenerateED25519KeyPair(comment string) (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	privBlock, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	privateKeyPEM := pem.EncodeToMemory(privBlock)

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}
	pubLine := ssh.MarshalAuthorizedKey(sshPub)
	if comment != "" {
		pubLine = append(pubLine[:len(pubLine)-1], []byte(" "+comment+"\n")...)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubLine,
	}, nil
}
