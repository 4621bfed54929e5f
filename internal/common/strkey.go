package common

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"fmt"
)

// VersionByte prefixes a StrKey payload and determines its first character.
type VersionByte byte

const (
	VersionAccountID VersionByte = 6 << 3  // 'G'
	VersionSeed      VersionByte = 18 << 3 // 'S'
	VersionContract  VersionByte = 2 << 3  // 'C'
)

// AccountIDLength is the length of an encoded ed25519 account id.
const AccountIDLength = 56

var strkeyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeStrKey encodes a 32-byte payload with the given version byte.
func EncodeStrKey(version VersionByte, payload []byte) (string, error) {
	if len(payload) != 32 {
		return "", fmt.Errorf("strkey payload must be 32 bytes, got %d", len(payload))
	}

	raw := make([]byte, 0, 1+len(payload)+2)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	raw = binary.LittleEndian.AppendUint16(raw, crc16XModem(raw))

	return strkeyEncoding.EncodeToString(raw), nil
}

// DecodeStrKey decodes s and checks its version byte and checksum.
func DecodeStrKey(version VersionByte, s string) ([]byte, error) {
	if len(s) != AccountIDLength {
		return nil, fmt.Errorf("invalid strkey length %d", len(s))
	}

	raw, err := strkeyEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid strkey encoding: %w", err)
	}
	if len(raw) != 35 {
		return nil, fmt.Errorf("invalid strkey payload length %d", len(raw))
	}
	if VersionByte(raw[0]) != version {
		return nil, fmt.Errorf("unexpected strkey version byte %d", raw[0])
	}

	body, sum := raw[:33], raw[33:]
	want := binary.LittleEndian.AppendUint16(nil, crc16XModem(body))
	if !bytes.Equal(sum, want) {
		return nil, fmt.Errorf("invalid strkey checksum")
	}

	// Reject non-canonical encodings that decode to the same bytes
	if strkeyEncoding.EncodeToString(raw) != s {
		return nil, fmt.Errorf("non-canonical strkey")
	}

	return body[1:], nil
}

// IsValidAccountID reports whether address is a valid 'G...' account id.
func IsValidAccountID(address string) bool {
	_, err := DecodeStrKey(VersionAccountID, address)
	return err == nil
}

// ValidateAccountID returns ErrInvalidAddress wrapped with the reason when address is not an account id.
func ValidateAccountID(address string) error {
	if _, err := DecodeStrKey(VersionAccountID, address); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return nil
}

// crc16XModem is the CRC-16/XMODEM checksum used by StrKey
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
