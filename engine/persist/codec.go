package persist

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/chacha20poly1305"
	"gopkg.in/yaml.v3"
)

// Cipher is the optional transform applied to the serialized document before
// it hits disk. The engine only requires that Decrypt(Encrypt(x)) == x and
// that failure surfaces as an error.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// NoopCipher passes data through unchanged. Used when no passphrase is
// configured.
type NoopCipher struct{}

func (NoopCipher) Encrypt(plaintext []byte) ([]byte, error)  { return plaintext, nil }
func (NoopCipher) Decrypt(ciphertext []byte) ([]byte, error) { return ciphertext, nil }

// KeyCipher seals save files with XChaCha20-Poly1305 under a key derived from
// a passphrase. The random nonce is prefixed to the ciphertext.
type KeyCipher struct {
	key []byte
}

// NewKeyCipher derives a cipher from a passphrase.
func NewKeyCipher(passphrase string) *KeyCipher {
	key := sha256.Sum256([]byte(passphrase))
	return &KeyCipher{key: key[:]}
}

func (c *KeyCipher) Encrypt(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *KeyCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, fmt.Errorf("save data too short to decrypt")
	}
	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting save data: %w", err)
	}
	return plaintext, nil
}

// Codec frames a document for disk: yaml, zstd-compressed, then the cipher.
type Codec struct {
	cipher Cipher
}

// NewCodec builds a codec over the given cipher. A nil cipher means no
// encryption.
func NewCodec(cipher Cipher) *Codec {
	if cipher == nil {
		cipher = NoopCipher{}
	}
	return &Codec{cipher: cipher}
}

// Encode serializes a document to its on-disk form.
func (c *Codec) Encode(doc *Document) ([]byte, error) {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling save document: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	compressed := enc.EncodeAll(raw, nil)
	enc.Close()
	return c.cipher.Encrypt(compressed)
}

// Decode parses the on-disk form back into a document. Any failure, from the
// cipher through to a document without a game root, is a load error.
func (c *Codec) Decode(data []byte) (*Document, error) {
	compressed, err := c.cipher.Decrypt(data)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing save data: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing save document: %w", err)
	}
	if doc.Game.Name == "" {
		return nil, fmt.Errorf("save document has no game root")
	}
	return &doc, nil
}
