package batch

import "github.com/osgrid/gip/gip/config"

// ResponseTimes estimates the expected (ERT) and worst-case (WRT) response
// times, in seconds, for a queue with the given number of running and
// waiting jobs.
//
// Pass averageJobTime/maxJobTime <= 0 to fall back to the site defaults
// ([gip] average_job_time, 4h; [gip] max_job_time, 24h).
//
// With fewer than 10 jobs in play the estimate is pinned: one minute when
// either count is zero, otherwise one hour; the worst case is one day.
// Above that the times scale with queue pressure and are clamped so that
// ERT stays within [1 minute, 1 day], WRT within [2*ERT, 30 days].
func ResponseTimes(site *config.Site, running, waiting, averageJobTime, maxJobTime int) (ert, wrt int) {
	if averageJobTime <= 0 {
		averageJobTime = site.GetInt("gip", "average_job_time", 4*3600)
	}
	if maxJobTime <= 0 {
		maxJobTime = site.GetInt("gip", "max_job_time", 24*3600)
	}
	if maxJobTime < averageJobTime {
		maxJobTime = 2 * averageJobTime
	}
	if abs(running)+abs(waiting) < 10 {
		if abs(running) == 0 || abs(waiting) == 0 {
			return 60, 86400
		}
		return 3600, 86400
	}
	// The +10 in the ERT divisor dampens the estimate for almost-idle
	// queues; the worst case keeps the raw +1.
	ert = int(float64(averageJobTime) / float64(running+10) * float64(waiting))
	wrt = int(float64(maxJobTime) / float64(running+1) * float64(waiting))
	ert = max(min(ert, 86400), 60)
	wrt = max(min(wrt, 30*86400), 2*ert)
	return ert, wrt
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
