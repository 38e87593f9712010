package telemetry

import "time"

// cpuSampler estimates process CPU usage between consecutive readings.
type cpuSampler struct {
	read     func() (user, system time.Duration, ok bool)
	lastUser time.Duration
	lastSys  time.Duration
	lastWall time.Time
}

func newCPUSampler(now time.Time) *cpuSampler {
	s := &cpuSampler{read: readCPUTimes, lastWall: now}
	s.lastUser, s.lastSys, _ = s.read()
	return s
}

// percent returns (Δuser+Δsystem)/Δwall*100 clamped to [0,100] and moves the
// baseline to the current reading.
func (s *cpuSampler) percent(now time.Time) float64 {
	user, sys, ok := s.read()
	if !ok {
		return 0
	}
	wall := now.Sub(s.lastWall)
	used := (user - s.lastUser) + (sys - s.lastSys)
	s.lastUser, s.lastSys, s.lastWall = user, sys, now

	if wall <= 0 {
		return 0
	}
	pct := float64(used) / float64(wall) * 100
	return min(max(pct, 0), 100)
}
