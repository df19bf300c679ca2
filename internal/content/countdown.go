package content

import "time"

// Countdown is the time left in the current offer window.
type Countdown struct {
	Hours     int       `json:"hours"`
	Minutes   int       `json:"minutes"`
	Seconds   int       `json:"seconds"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CountdownAt computes the remaining time in the rolling offer window.
// Windows are anchored to the Unix epoch, so the timer restarts the
// moment it hits zero and every visitor sees the same deadline.
func CountdownAt(now time.Time, window time.Duration) Countdown {
	if window <= 0 {
		window = 24 * time.Hour
	}
	elapsed := time.Duration(now.UnixNano()) % window
	remaining := window - elapsed
	expires := now.Add(remaining)

	totalSeconds := int(remaining / time.Second)
	return Countdown{
		Hours:     totalSeconds / 3600,
		Minutes:   (totalSeconds % 3600) / 60,
		Seconds:   totalSeconds % 60,
		ExpiresAt: expires.UTC(),
	}
}
