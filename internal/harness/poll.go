package harness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Kochuseyin65/muayane/internal/api"
	"github.com/Kochuseyin65/muayane/internal/report"
)

// stepPrepareReportAsync enqueues background report preparation and
// reconciles completion by polling the job status endpoint. The enqueue
// call is never retried; on enqueue failure or poll exhaustion the
// synchronous prepare endpoint decides the outcome.
func (h *Harness) stepPrepareReportAsync() []report.StepResult {
	const name = "prepare_report_async"
	resp, err := h.client.Post(fmt.Sprintf("/reports/%d/prepare-async", h.ctx.ReportID), nil, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}

	var job api.JobPayload
	enqueued := (resp.Status == 200 || resp.Status == 202) &&
		resp.DecodeData(&job) == nil && job.JobID != ""

	var ok bool
	switch {
	case enqueued:
		ok = h.awaitReportJob(job.JobID)
		if !ok {
			h.logger.Info("report job did not complete, falling back to sync prepare",
				zap.String("job_id", job.JobID))
			ok = h.prepareSync()
		}
	default:
		// Enqueue failed; go straight to the synchronous equivalent.
		ok = h.prepareSync()
	}
	return one(record(name, resp, ok, "", map[string]any{"job_id": job.JobID}))
}

// awaitReportJob polls the job status endpoint up to the configured
// bound with a fixed delay, returning true as soon as it observes a
// terminal completed status.
func (h *Harness) awaitReportJob(jobID string) bool {
	for attempt := 0; attempt < h.cfg.PollAttempts; attempt++ {
		s, err := h.client.Get("/reports/jobs/"+jobID, h.ctx.AdminToken, nil)
		if err == nil && s.Status == 200 {
			var job api.JobPayload
			if s.DecodeData(&job) == nil && job.Status == "completed" {
				return true
			}
		}
		h.sleep(h.cfg.PollDelay)
	}
	return false
}

func (h *Harness) prepareSync() bool {
	p, err := h.client.Post(fmt.Sprintf("/reports/%d/prepare", h.ctx.ReportID), nil, h.ctx.AdminToken)
	return err == nil && p.OK()
}
