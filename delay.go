package siripush

import (
	"fmt"
	"time"
)

// DeliveryDelay computes how long the upstream notifier took to deliver a
// push, truncated to millisecond resolution. Returns nil when the envelope
// carried no response timestamp.
func DeliveryDelay(responseTimestamp *time.Time, now time.Time) *time.Duration {
	if responseTimestamp == nil {
		return nil
	}
	d := now.Sub(*responseTimestamp).Truncate(time.Millisecond)
	return &d
}

// FormatDeliveryDelay renders a delay as "minutes:seconds,milliseconds" with
// unpadded minutes and seconds and zero-padded milliseconds, e.g. 125004ms
// becomes "2:5,004". The layout is part of the observable output and must not
// change.
func FormatDeliveryDelay(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%d:%d,%03d", ms/1000/60, (ms/1000)%60, ms%1000)
}
