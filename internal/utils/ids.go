package utils

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	hexAlphabet   = "0123456789abcdef"
	digitAlphabet = "0123456789"

	// MessageIDLength is the width of a generated message id in hex characters.
	MessageIDLength = 20
	// RecipientDigits is the number of random digits appended to a recipient prefix.
	RecipientDigits = 8
)

// NewEventID returns a decimal string in [0, 2^63-1]: the low 64 bits of a random
// UUID with the sign bit cleared.
func NewEventID() string {
	u := uuid.New()
	v := binary.BigEndian.Uint64(u[8:]) & 0x7fffffffffffffff
	return strconv.FormatUint(v, 10)
}

// NewMessageID returns 20 hex characters: the 32-bit unix time of ts in little-endian
// byte order followed by 6 random bytes.
func NewMessageID(ts time.Time) string {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(ts.Unix()))

	suffix, err := gonanoid.Generate(hexAlphabet, MessageIDLength-2*len(prefix))
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(prefix[:]) + suffix
}

// NewRecipientLocalPart returns prefix followed by random digits, e.g. test04817362.
func NewRecipientLocalPart(prefix string) string {
	digits, err := gonanoid.Generate(digitAlphabet, RecipientDigits)
	if err != nil {
		panic(err)
	}
	return prefix + digits
}
