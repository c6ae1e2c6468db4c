package utils

import (
	"time"
)

// Clock abstracts the current time so expiry checks can be driven in tests
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return UTCNow()
}

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowRFC3339 returns the current UTC time in RFC3339 format
func UTCNowRFC3339() string {
	return UTCNow().Format(time.RFC3339)
}

// IsExpiredAt reports whether expiry lies strictly before now.
// A nil expiry counts as expired.
func IsExpiredAt(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return true
	}
	return now.After(*expiry)
}
