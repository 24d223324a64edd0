package limiter

import "time"

// timing-related data used to space out requests to one host
type hostTiming struct {
	lastFetchAt time.Time
}

func (h *hostTiming) LastFetchAt() time.Time {
	return h.lastFetchAt
}
