package misc

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
	"unsafe"
)

var (
	ErrMissingId = errors.New("missing id")
)

// 9 bytes of unixnano and 7 random bytes
func PseudoUUID() string {
	now := time.Now().UnixNano()
	randPart := make([]byte, 7)
	if _, err := rand.Read(randPart); err != nil {
		copy(randPart, (*(*[8]byte)(unsafe.Pointer(&now)))[:7])
	}
	return strconv.FormatInt(now, 10)[1:] + hex.EncodeToString(randPart)
}

func DoesIntersect(opts []string, tg []string) bool {
	for _, o := range opts {
		for _, t := range tg {
			if t == o {
				return true
			}
		}
	}

	return false
}

func IsInList(haystack []string, needle string) bool {
	needle = TrimKey(needle)
	for _, h := range haystack {
		if TrimKey(h) == needle {
			return true
		}
	}
	return false
}

// Canonical form used for case-insensitive name comparisons.
func TrimKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func LowerSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = TrimKey(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func TrimEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Was the given unix timestamp within the last X hours?
func WithinLast(ts int32, hours int32) bool {
	return ts > int32(time.Now().Unix())-(hours*60*60)
}
