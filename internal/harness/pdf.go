package harness

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/Kochuseyin65/muayane/internal/api"
	"github.com/Kochuseyin65/muayane/internal/report"
)

var pdfMagic = []byte("%PDF")

// stepVerifyUnsignedReport checks that the prepared report exposes an
// unsigned artifact path and that the signing payload decodes to a
// well-formed PDF. A malformed payload triggers exactly one synchronous
// regeneration before the final verdict.
func (h *Harness) stepVerifyUnsignedReport() []report.StepResult {
	const name = "verify_unsigned_report"
	resp, err := h.client.Get(fmt.Sprintf("/reports/%d", h.ctx.ReportID), h.ctx.AdminToken, nil)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	var rep api.ReportPayload
	if ok {
		if err := resp.DecodeData(&rep); err != nil || rep.UnsignedPDFPath == "" {
			ok = false
		}
	}

	var head []byte
	if ok {
		head, ok = h.fetchPDFHead()
		if !ok && h.prepareSync() {
			head, ok = h.fetchPDFHead()
		}
	}
	return one(record(name, resp, ok, "", map[string]any{
		"unsigned_pdf_path": rep.UnsignedPDFPath,
		"head":              headBytes(head),
	}))
}

// fetchPDFHead downloads the signing payload and validates its leading
// bytes, returning whatever head it saw for diagnostics.
func (h *Harness) fetchPDFHead() ([]byte, bool) {
	s, err := h.client.Get(fmt.Sprintf("/reports/%d/signing-data", h.ctx.ReportID), h.ctx.AdminToken, nil)
	if err != nil || !s.OK() {
		return nil, false
	}
	var signing api.SigningPayload
	if err := s.DecodeData(&signing); err != nil || signing.PDFBase64 == "" {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(signing.PDFBase64)
	if err != nil || len(raw) < len(pdfMagic) {
		return nil, false
	}
	head := raw[:len(pdfMagic)]
	return head, bytes.Equal(head, pdfMagic)
}

func headBytes(head []byte) []int {
	if head == nil {
		return nil
	}
	out := make([]int, len(head))
	for i, b := range head {
		out[i] = int(b)
	}
	return out
}
