package stellar

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	envelopeTypeTx  = 2
	maxSignatures   = 20
	signatureLength = ed25519.SignatureSize
	// hint(4) + length prefix(4) + signature(64)
	decoratedSignatureSize = 4 + 4 + signatureLength
	// source account(36) + fee(4) + seq(8) + cond(4) + memo(4) + ops(4) + ext(4)
	minTxSize = 64
)

// ErrUnsupportedEnvelope is returned for envelopes other than v1 transactions.
var ErrUnsupportedEnvelope = errors.New("unsupported transaction envelope")

// TransactionHash returns the hash signers sign for a v1 transaction under passphrase.
func TransactionHash(txBytes []byte, passphrase string) [32]byte {
	networkID := sha256.Sum256([]byte(passphrase))

	payload := make([]byte, 0, len(networkID)+4+len(txBytes))
	payload = append(payload, networkID[:]...)
	payload = binary.BigEndian.AppendUint32(payload, envelopeTypeTx)
	payload = append(payload, txBytes...)
	return sha256.Sum256(payload)
}

// SplitEnvelope splits a v1 envelope into the transaction body and its signature count.
//
// The transaction body is not decoded; the signature array is located from the
// end of the envelope, where every decorated ed25519 signature has a fixed size.
// The smallest count whose framing matches wins, so body bytes that look like
// signatures are never taken for them. A signed envelope is only misread if
// its own signature bytes happen to form a shorter valid array.
func SplitEnvelope(envelope []byte) (tx []byte, signatures int, err error) {
	if len(envelope) < 8 {
		return nil, 0, fmt.Errorf("%w: envelope too short", ErrUnsupportedEnvelope)
	}
	if t := binary.BigEndian.Uint32(envelope); t != envelopeTypeTx {
		return nil, 0, fmt.Errorf("%w: envelope type %d", ErrUnsupportedEnvelope, t)
	}

	for n := 0; n <= maxSignatures; n++ {
		start := len(envelope) - (4 + n*decoratedSignatureSize)
		if start-4 < minTxSize {
			break
		}
		if binary.BigEndian.Uint32(envelope[start:]) != uint32(n) {
			continue
		}
		if !signaturesWellFormed(envelope[start+4:], n) {
			continue
		}
		return envelope[4:start], n, nil
	}
	return nil, 0, fmt.Errorf("%w: signature list not found", ErrUnsupportedEnvelope)
}

func signaturesWellFormed(b []byte, n int) bool {
	for i := 0; i < n; i++ {
		off := i*decoratedSignatureSize + 4
		if binary.BigEndian.Uint32(b[off:]) != signatureLength {
			return false
		}
	}
	return true
}

// SignEnvelope signs a base64 XDR v1 envelope with key for passphrase and
// returns the envelope with the decorated signature appended.
func SignEnvelope(envelopeXDR, passphrase string, key ed25519.PrivateKey) (string, error) {
	envelope, err := base64.StdEncoding.DecodeString(envelopeXDR)
	if err != nil {
		return "", fmt.Errorf("invalid envelope encoding: %w", err)
	}

	tx, n, err := SplitEnvelope(envelope)
	if err != nil {
		return "", err
	}
	if n == maxSignatures {
		return "", fmt.Errorf("envelope already carries %d signatures", n)
	}

	hash := TransactionHash(tx, passphrase)
	sig := ed25519.Sign(key, hash[:])
	pub := key.Public().(ed25519.PublicKey)

	out := make([]byte, 0, len(envelope)+decoratedSignatureSize)
	out = append(out, envelope[:4+len(tx)]...)
	out = binary.BigEndian.AppendUint32(out, uint32(n+1))
	out = append(out, envelope[4+len(tx)+4:]...)
	out = append(out, pub[len(pub)-4:]...)
	out = binary.BigEndian.AppendUint32(out, signatureLength)
	out = append(out, sig...)

	return base64.StdEncoding.EncodeToString(out), nil
}
