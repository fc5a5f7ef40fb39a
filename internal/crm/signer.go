package crm

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashPlaceholder is the value security_hash holds while the signature is
// computed. The downstream verifier must substitute the same placeholder to
// reconstruct byte-identical input; treat it as a versioned contract.
const HashPlaceholder = "PENDING"

// Signer computes HMAC-SHA256 signatures over the canonical JSON form of an
// envelope: lexicographically sorted keys, compact separators, no
// insignificant whitespace.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the lowercase hex digest over the canonical bytes of env with
// its security hash held at HashPlaceholder. The caller inserts the returned
// digest into the envelope after signing.
func (s *Signer) Sign(env Envelope) (string, error) {
	env.EventMetadata.SecurityHash = HashPlaceholder
	canon, err := canonicalJSON(env)
	if err != nil {
		return "", fmt.Errorf("canonicalize envelope: %w", err)
	}
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write(canon)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the signature over env's canonical bytes and compares it
// with the stored security hash in constant time.
func (s *Signer) Verify(env Envelope) (bool, error) {
	stored := env.EventMetadata.SecurityHash
	if stored == "" || stored == HashPlaceholder {
		return false, nil
	}
	expected, err := s.Sign(env)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(stored), []byte(expected)), nil
}

// canonicalJSON round-trips v through a generic value so encoding/json sorts
// object keys; json.Number keeps numeric literals byte-stable.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
