package whitelist

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Layout constants.
const (
	// UIDSize is the number of bytes in a tag identifier.
	UIDSize = 4

	// MaxUsers is the number of whitelist slots in the store.
	MaxUsers = 10

	// EmptyByte marks an unused slot byte.
	EmptyByte = 0xFF

	// StoreSize is the number of addressable store bytes.
	StoreSize = MaxUsers * UIDSize
)

// Whitelist errors.
var (
	ErrInvalidUID        = errors.New("invalid tag uid")
	ErrTooManyTags       = errors.New("too many tags for whitelist")
	ErrImageSize         = errors.New("invalid whitelist image size")
	ErrAddressOutOfRange = errors.New("store address out of range")
)

// UID is a tag identifier as read from the reader.
type UID [UIDSize]byte

// String formats the UID as colon-separated upper-case hex, e.g. "AA:BB:CC:DD".
func (u UID) String() string {
	var b strings.Builder
	for i, v := range u {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}

// IsEmpty reports whether every byte equals EmptyByte.
func (u UID) IsEmpty() bool {
	for _, v := range u {
		if v != EmptyByte {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (u UID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UID) UnmarshalText(text []byte) error {
	parsed, err := ParseUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUID parses a UID written as hex, optionally separated by colons,
// dashes or spaces ("AA:BB:CC:DD", "aa bb cc dd", "AABBCCDD").
func ParseUID(s string) (UID, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return UID{}, fmt.Errorf("%w: %q: %v", ErrInvalidUID, s, err)
	}
	if len(raw) != UIDSize {
		return UID{}, fmt.Errorf("%w: %q has %d bytes, want %d", ErrInvalidUID, s, len(raw), UIDSize)
	}

	var u UID
	copy(u[:], raw)
	if u.IsEmpty() {
		return UID{}, fmt.Errorf("%w: %q is the empty-slot sentinel", ErrInvalidUID, s)
	}
	return u, nil
}

// MustParseUID is like ParseUID but panics on error.
func MustParseUID(s string) UID {
	u, err := ParseUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseUIDs parses a list of UIDs.
func ParseUIDs(values []string) ([]UID, error) {
	uids := make([]UID, 0, len(values))
	for _, v := range values {
		u, err := ParseUID(v)
		if err != nil {
			return nil, err
		}
		uids = append(uids, u)
	}
	return uids, nil
}
