//go:build !unix

package telemetry

import "time"

func readCPUTimes() (user, system time.Duration, ok bool) {
	return 0, 0, false
}
