// Package harness drives one full lifecycle of the muayene business
// process against a live backend: customer, equipment, offer, work
// order, inspection, report preparation and digital signing. Steps run
// strictly in order; a failing step never aborts the pipeline, so one
// broken dependency produces a readable trail of downstream failures
// instead of a crash.
package harness

import (
	"time"

	"go.uber.org/zap"

	"github.com/Kochuseyin65/muayane/internal/api"
	"github.com/Kochuseyin65/muayane/internal/config"
	"github.com/Kochuseyin65/muayane/internal/report"
)

// Harness executes the verification pipeline and records per-step
// results. One Harness serves exactly one run.
type Harness struct {
	cfg    config.Config
	client *api.Client
	ctx    *Context
	log    *report.Log
	logger *zap.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

// Option tweaks harness construction.
type Option func(*Harness)

// WithClock overrides the time source used for unique suffixes and
// scheduling dates.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) { h.now = now }
}

// WithSleep overrides the poller's delay function.
func WithSleep(sleep func(time.Duration)) Option {
	return func(h *Harness) { h.sleep = sleep }
}

// New creates a harness for the given configuration. A nil logger
// disables progress logging.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Harness{
		cfg:    cfg,
		client: api.New(cfg.BaseURL, logger),
		ctx:    &Context{},
		log:    &report.Log{},
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type step struct {
	name string
	run  func(*Harness) []report.StepResult
}

// pipeline is the fixed ordered step sequence. The final status-flow
// step emits two results, so a complete run records 25 entries.
func pipeline() []step {
	return []step{
		{"health", (*Harness).stepHealth},
		{"login_admin", (*Harness).stepLoginAdmin},
		{"profile_admin", (*Harness).stepProfile},
		{"create_customer", (*Harness).stepCreateCustomer},
		{"create_equipment", (*Harness).stepCreateEquipment},
		{"create_offer", (*Harness).stepCreateOffer},
		{"approve_offer", (*Harness).stepApproveOffer},
		{"send_offer", (*Harness).stepSendOffer},
		{"public_offer_accept", (*Harness).stepPublicOfferAccept},
		{"convert_to_work_order", (*Harness).stepConvertToWorkOrder},
		{"list_inspections", (*Harness).stepListInspections},
		{"upload_inspection_photo", (*Harness).stepUploadInspectionPhoto},
		{"update_inspection", (*Harness).stepUpdateInspection},
		{"save_inspection", (*Harness).stepSaveInspection},
		{"complete_inspection", (*Harness).stepCompleteInspection},
		{"work_order_status_completed", (*Harness).stepWorkOrderCompleted},
		{"prepare_report_async", (*Harness).stepPrepareReportAsync},
		{"verify_unsigned_report", (*Harness).stepVerifyUnsignedReport},
		{"download_report_unsigned", (*Harness).stepDownloadUnsigned},
		{"sign_report_with_technician", (*Harness).stepSignWithTechnician},
		{"verify_signed_path", (*Harness).stepVerifySignedPath},
		{"download_report_signed", (*Harness).stepDownloadSigned},
		{"public_qr", (*Harness).stepPublicQR},
		{"work_order_status_flow", (*Harness).stepWorkOrderStatusFlow},
	}
}

// StepNames returns the pipeline step names in execution order.
func StepNames() []string {
	steps := pipeline()
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.name
	}
	return names
}

// Run executes every step in order and returns the derived summary.
// It always runs to completion regardless of individual step outcomes.
func (h *Harness) Run() report.Summary {
	for _, s := range pipeline() {
		h.logger.Info("running step", zap.String("step", s.name))
		for _, r := range s.run(h) {
			h.log.Append(r)
			if !r.Success {
				h.logger.Warn("step failed",
					zap.String("step", r.Name),
					zap.String("message", r.Message))
			}
		}
	}
	return h.log.Summary()
}

// Results returns the recorded result log so far.
func (h *Harness) Results() []report.StepResult {
	return h.log.Results()
}

// record builds a result from an HTTP response, attaching the raw
// status and best-effort parsed body for post-run diagnosis.
func record(name string, resp *api.Response, success bool, message string, extra map[string]any) report.StepResult {
	r := report.StepResult{
		Name:    name,
		Success: success,
		Message: message,
		Data:    map[string]any{},
	}
	if resp != nil {
		r.Status = report.StatusOf(resp.Status)
		r.Data["response"] = resp.JSON()
	} else {
		r.Data["response"] = nil
	}
	for k, v := range extra {
		r.Data[k] = v
	}
	return r
}

// fail builds a result for a transport-level failure with no response.
func fail(name string, err error) report.StepResult {
	return record(name, nil, false, err.Error(), nil)
}

func one(r report.StepResult) []report.StepResult {
	return []report.StepResult{r}
}
