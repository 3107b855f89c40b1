package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrSeedTooShort = errors.New("obfuscation seed must be at least 12 characters")
)

const minSeedLen = 12

// ObfuscateAPIKey derives the time-keyed API key the ZIA portal expects from
// the tenant seed. The last six digits of the millisecond timestamp index
// into the seed directly; the six zero-padded digits of that number shifted
// right once index into the seed offset by two. The same timestamp must be
// submitted alongside the derived key.
func ObfuscateAPIKey(seed string, now time.Time) (int64, string, error) {
	if len(seed) < minSeedLen {
		return 0, "", ErrSeedTooShort
	}

	timestamp := now.UnixMilli()
	digits := strconv.FormatInt(timestamp, 10)
	high := digits[len(digits)-6:]

	highNum, err := strconv.Atoi(high)
	if err != nil {
		return 0, "", fmt.Errorf("parsing timestamp digits: %w", err)
	}

	low := fmt.Sprintf("%06d", highNum>>1)

	var key strings.Builder
	for i := 0; i < len(high); i++ {
		key.WriteByte(seed[high[i]-'0'])
	}

	for i := 0; i < len(low); i++ {
		key.WriteByte(seed[low[i]-'0'+2])
	}

	return timestamp, key.String(), nil
}
