package identity

import (
	"encoding/hex"
	"time"
)

const (
	signatureLabel  = "SIGNATURE:"
	signatureSuffix = "UNIQUE_ENTITY"
)

// Sign derives the display signature of a record. It is a plain hex encoding,
// not a cryptographic signature.
func Sign(name, createdAt string) string {
	base := name + "-" + createdAt + "-" + signatureSuffix
	return hex.EncodeToString([]byte(signatureLabel + base))
}

// Timestamp formats t in UTC as ISO-8601 with a literal Z. Microseconds are
// included unless they are zero.
func Timestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}
