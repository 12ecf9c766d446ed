// Package scrypto derives the octet codec's encryption key from an
// operator-supplied passphrase, and prompts for that passphrase on a
// terminal without echoing it.
package scrypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"

	"github.com/faanross/rainbow/internal/rainbowerr"
)

const (
	PBKDF2Iterations = 200_000
	KeySize = 32
	SaltSize = 16
)

// DeriveKey generates a 32-byte octet-codec key from password using
// PBKDF2-SHA256, narrating the derivation the way a CLI-driven tool
// does: it prints the algorithm, iteration count, salt length and a
// fingerprint of the first four key bytes.
func DeriveKey(password, salt []byte) []byte {
	fmt.Printf("\n🔑 Key Derivation:\n")
	fmt.Printf(" Algorithm: PBKDF2-SHA256\n")
	fmt.Printf(" Iterations: %d\n", PBKDF2Iterations)
	fmt.Printf(" Salt length: %d bytes\n", len(salt))

	key := pbkdf2.Key(password, salt, PBKDF2Iterations, KeySize, sha256.New)

	fmt.Printf(" Key fingerprint: %X...\n", key[:4])
	return key
}

// GetSecurePassword prompts for a passphrase with hidden input on fd,
// enforcing an 8-character minimum.
func GetSecurePassword(prompt string, fd int) ([]byte, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return nil, rainbowerr.WrapIO(err)
	}
	if len(password) < 8 {
		return nil, rainbowerr.InvalidData("password must be at least 8 characters")
	}
	return password, nil
}
