package telemetry

// Sample is one completed request.
type Sample struct {
	DurationMs float64
	Bytes      int
}

// ring is a fixed-capacity sample buffer with a running byte total.
type ring struct {
	buf        []Sample
	head       int // next write position
	count      int
	totalBytes int64
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Sample, capacity)}
}

// push appends s, evicting the oldest sample when full.
func (r *ring) push(s Sample) {
	if r.count == len(r.buf) {
		r.totalBytes -= int64(r.buf[r.head].Bytes)
	} else {
		r.count++
	}
	r.buf[r.head] = s
	r.totalBytes += int64(s.Bytes)
	r.head = (r.head + 1) % len(r.buf)
}

func (r *ring) len() int {
	return r.count
}

// durations returns a fresh copy of the stored durations.
func (r *ring) durations() []float64 {
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out[i] = r.buf[(start+i)%len(r.buf)].DurationMs
	}
	return out
}

func (r *ring) avgBytes() float64 {
	if r.count == 0 {
		return 0
	}
	return float64(r.totalBytes) / float64(r.count)
}
