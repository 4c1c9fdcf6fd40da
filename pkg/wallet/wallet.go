// Package wallet derives per-user signing keys from BIP-39 mnemonics and seals them for storage.
//
// The sealing secret is a deployment-wide parameter, so an encrypted blob only protects against
// casual inspection of the data store, not against a compromised server or secret.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	entropyBits = 256 // 24 words

	blobVersion      = "v1:"
	saltLen          = 16
	keyLen           = 32
	pbkdf2Iterations = 100_000
)

// DerivationPath is m/44'/60'/0'/0/0.
var DerivationPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

var (
	ErrEmptySecret   = errors.New("wallet: encryption secret is empty")
	ErrMalformed     = errors.New("wallet: malformed encrypted blob")
	ErrDecryption    = errors.New("wallet: decryption failed")
	ErrNoKeyMaterial = errors.New("wallet: derivation produced no key material")
)

type Info struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	Mnemonic   string `json:"mnemonic"`
}

// Generate creates a fresh 24-word mnemonic and derives its first account.
func Generate() (*Info, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to generate mnemonic: %w", err)
	}

	return FromMnemonic(mnemonic)
}

// FromMnemonic deterministically derives the account at DerivationPath.
func FromMnemonic(mnemonic string) (*Info, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid mnemonic: %w", err)
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to create master key: %w", err)
	}

	for _, idx := range DerivationPath {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("wallet: failed to derive child key: %w", err)
		}
	}

	ecPriv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("wallet: failed to extract private key: %w", err)
	}

	raw := ecPriv.Serialize()
	if len(raw) == 0 {
		return nil, ErrNoKeyMaterial
	}

	privateKey, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoKeyMaterial, err)
	}

	return &Info{
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey).Hex(),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(privateKey)),
		Mnemonic:   mnemonic,
	}, nil
}

// Encrypt seals the wallet triple under secret with AES-256-GCM.
func Encrypt(info *Info, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	plain, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("wallet: failed to serialize: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	gcm, err := newGCM(secret, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, plain, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)

	return blobVersion + base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens a blob produced by Encrypt. A wrong secret fails authentication rather than
// yielding a different wallet.
func Decrypt(blob, secret string) (*Info, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if !strings.HasPrefix(blob, blobVersion) {
		return nil, ErrMalformed
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(blob, blobVersion))
	if err != nil {
		return nil, ErrMalformed
	}
	if len(raw) < saltLen {
		return nil, ErrMalformed
	}

	salt := raw[:saltLen]
	gcm, err := newGCM(secret, salt)
	if err != nil {
		return nil, err
	}

	rest := raw[saltLen:]
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, ErrMalformed
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryption
	}

	var info Info
	if err := json.Unmarshal(plain, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if info.Address == "" || info.PrivateKey == "" {
		return nil, ErrMalformed
	}

	return &info, nil
}

func newGCM(secret string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(secret), salt, pbkdf2Iterations, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
