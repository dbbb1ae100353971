package vaulttest

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/iov-one/vault"
	"golang.org/x/crypto/ed25519"
)

// Key is an ed25519 identity used to derive member addresses.
type Key struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// NewKey returns a random key.
func NewKey() Key {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return Key{pub: pub, priv: priv}
}

// SeededKey returns a key derived from name. The same name always results
// in the same key, which keeps test output stable.
func SeededKey(name string) Key {
	seed := sha256.Sum256([]byte(name))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return Key{pub: priv.Public().(ed25519.PublicKey), priv: priv}
}

// Condition returns the condition that this key signs for.
func (k Key) Condition() vault.Condition {
	return vault.NewCondition("sigs", "ed25519", k.pub)
}

// Address returns the address of this key.
func (k Key) Address() vault.Address {
	return k.Condition().Address()
}

// Sign returns the signature of message.
func (k Key) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// Verify checks a signature created with Sign.
func (k Key) Verify(message, sig []byte) bool {
	return ed25519.Verify(k.pub, message, sig)
}

// NewCondition returns the condition of a fresh random key.
func NewCondition() vault.Condition {
	return NewKey().Condition()
}

// NewAddress returns the address of a fresh random key.
func NewAddress() vault.Address {
	return NewKey().Address()
}

// Addresses returns the addresses of a set of named keys, in order.
func Addresses(names ...string) []vault.Address {
	res := make([]vault.Address, len(names))
	for i, n := range names {
		res[i] = SeededKey(n).Address()
	}
	return res
}
