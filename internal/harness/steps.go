package harness

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kochuseyin65/muayane/internal/api"
	"github.com/Kochuseyin65/muayane/internal/report"
)

func (h *Harness) stepHealth() []report.StepResult {
	resp, err := h.client.Get("/health", "", nil)
	if err != nil {
		return one(fail("health", err))
	}
	return one(record("health", resp, resp.OK(), "", nil))
}

func (h *Harness) stepLoginAdmin() []report.StepResult {
	const name = "login_admin"
	resp, err := h.client.Post("/auth/login", map[string]any{
		"email":    h.cfg.AdminEmail,
		"password": h.cfg.AdminPassword,
	}, "")
	if err != nil {
		return one(fail(name, err))
	}
	if !resp.OK() {
		return one(record(name, resp, false, "", nil))
	}
	token := api.LoginToken(resp)
	h.ctx.AdminToken = token
	return one(record(name, resp, token != "", "", nil))
}

func (h *Harness) stepProfile() []report.StepResult {
	resp, err := h.client.Get("/auth/profile", h.ctx.AdminToken, nil)
	if err != nil {
		return one(fail("profile_admin", err))
	}
	return one(record("profile_admin", resp, resp.OK(), "", nil))
}

func (h *Harness) stepCreateCustomer() []report.StepResult {
	const name = "create_customer"
	uniq := h.now().Unix()
	body := map[string]any{
		"name":  fmt.Sprintf("Test Musteri %d", uniq),
		"email": fmt.Sprintf("test%d@ex.com", uniq),
		// Unique tax number avoids colliding with seed data.
		"taxNumber":        fmt.Sprintf("9%09d", uniq),
		"address":          "",
		"contact":          "",
		"authorizedPerson": "",
	}
	resp, err := h.client.Post("/customer-companies", body, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		var payload api.IDPayload
		if err := resp.DecodeData(&payload); err != nil || payload.ID == 0 {
			ok = false
		} else {
			h.ctx.CustomerID = payload.ID
		}
	}
	return one(record(name, resp, ok, "", map[string]any{"customer_id": h.ctx.CustomerID}))
}

func (h *Harness) stepCreateEquipment() []report.StepResult {
	const name = "create_equipment"
	uniq := h.now().Unix()
	template := map[string]any{
		"sections": []map[string]any{
			{
				"id":    "genel",
				"title": "Genel",
				"type":  "key_value",
				"items": []map[string]any{
					{"name": "muayene_tarihi", "label": "Tarih", "valueType": "date", "required": true},
					{"name": "muayene_yeri", "label": "Yer", "valueType": "text", "required": true},
				},
			},
			{
				"id":    "guvenlik",
				"title": "Güvenlik",
				"type":  "checklist",
				"questions": []map[string]any{
					{
						"name":       "emniyet_sistemi",
						"label":      "Emniyet",
						"options":    []string{"Uygun", "Uygun Değil"},
						"passValues": []string{"Uygun"},
						"required":   true,
					},
				},
			},
			{
				"id":       "fotolar",
				"title":    "Fotoğraflar",
				"type":     "photos",
				"field":    "genel_gorunum",
				"display":  "grid",
				"maxCount": 6,
			},
		},
	}
	body := map[string]any{
		"name":     fmt.Sprintf("Kule Vinc %d", uniq),
		"type":     "vinc",
		"template": template,
	}
	resp, err := h.client.Post("/equipment", body, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		var payload api.IDPayload
		if err := resp.DecodeData(&payload); err != nil || payload.ID == 0 {
			ok = false
		} else {
			h.ctx.EquipmentID = payload.ID
		}
	}
	return one(record(name, resp, ok, "", map[string]any{"equipment_id": h.ctx.EquipmentID}))
}

func (h *Harness) stepCreateOffer() []report.StepResult {
	const name = "create_offer"
	body := map[string]any{
		"customerCompanyId": h.ctx.CustomerID,
		"items": []map[string]any{
			{"equipmentId": h.ctx.EquipmentID, "quantity": 1, "unitPrice": 1000},
		},
		"notes": "Otomatik test teklifi",
	}
	resp, err := h.client.Post("/offers", body, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		var payload api.IDPayload
		if err := resp.DecodeData(&payload); err != nil || payload.ID == 0 {
			ok = false
		} else {
			h.ctx.OfferID = payload.ID
		}
	}
	return one(record(name, resp, ok, "", map[string]any{"offer_id": h.ctx.OfferID}))
}

func (h *Harness) stepApproveOffer() []report.StepResult {
	const name = "approve_offer"
	resp, err := h.client.Post(fmt.Sprintf("/offers/%d/approve", h.ctx.OfferID), nil, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepSendOffer() []report.StepResult {
	const name = "send_offer"
	resp, err := h.client.Post(fmt.Sprintf("/offers/%d/send", h.ctx.OfferID), nil, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		// Reload the offer to pick up the tracking token.
		g, err := h.client.Get(fmt.Sprintf("/offers/%d", h.ctx.OfferID), h.ctx.AdminToken, nil)
		if err != nil {
			return one(record(name, resp, false, err.Error(), nil))
		}
		if g.OK() {
			var payload api.OfferPayload
			if err := g.DecodeData(&payload); err == nil {
				h.ctx.TrackingToken = payload.TrackingToken
			}
		}
		ok = h.ctx.TrackingToken != ""
	}
	return one(record(name, resp, ok, "", map[string]any{"tracking_token": h.ctx.TrackingToken}))
}

func (h *Harness) stepPublicOfferAccept() []report.StepResult {
	const name = "public_offer_accept"
	resp, err := h.client.Post(
		fmt.Sprintf("/offers/track/%s/accept", url.PathEscape(h.ctx.TrackingToken)),
		map[string]any{"note": "OK"}, "")
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.Status/100 == 2, "", nil))
}

func (h *Harness) stepConvertToWorkOrder() []report.StepResult {
	const name = "convert_to_work_order"
	// Pick a future window unlikely to collide with existing 09:00-17:00
	// slots from earlier runs.
	base := h.now()
	future := base.AddDate(0, 0, int(base.Unix()%90)+1)
	body := map[string]any{
		"openingDate":   base.UTC().Format("2006-01-02"),
		"taskStartDate": future.UTC().Format("2006-01-02"),
		"taskEndDate":   future.AddDate(0, 0, 1).UTC().Format("2006-01-02"),
		"notes":         "Tekliften",
	}
	resp, err := h.client.Post(fmt.Sprintf("/offers/%d/convert-to-work-order", h.ctx.OfferID), body, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		var payload api.IDPayload
		if err := resp.DecodeData(&payload); err != nil || payload.ID == 0 {
			ok = false
		} else {
			h.ctx.WorkOrderID = payload.ID
		}
	}
	return one(record(name, resp, ok, "", map[string]any{"work_order_id": h.ctx.WorkOrderID}))
}

func (h *Harness) stepListInspections() []report.StepResult {
	const name = "list_inspections"
	query := url.Values{"workOrderId": {strconv.FormatInt(h.ctx.WorkOrderID, 10)}}
	resp, err := h.client.Get("/inspections", h.ctx.AdminToken, query)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		var payload api.InspectionListPayload
		if err := resp.DecodeData(&payload); err == nil && len(payload.Inspections) > 0 {
			h.ctx.InspectionID = payload.Inspections[0].ID
		}
	}
	return one(record(name, resp, ok, "", map[string]any{"inspection_id": h.ctx.InspectionID}))
}

func (h *Harness) stepUploadInspectionPhoto() []report.StepResult {
	const name = "upload_inspection_photo"
	files := []api.File{{
		Field:    "photos",
		Name:     fmt.Sprintf("test_%d.png", h.now().Unix()),
		Content:  tinyPNG(),
		MIMEType: "image/png",
	}}
	resp, err := h.client.PostMultipart(
		fmt.Sprintf("/inspections/%d/photos", h.ctx.InspectionID),
		map[string]string{"fieldName": "genel_gorunum"}, files, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepUpdateInspection() []report.StepResult {
	const name = "update_inspection"
	body := map[string]any{
		"inspectionData": map[string]any{
			"muayene_tarihi":  h.now().Format("2006-01-02"),
			"muayene_yeri":    "Saha A",
			"emniyet_sistemi": "Uygun",
			// Some seed templates carry an extra required field named
			// 'test'; filling it keeps completion validation happy on
			// every template variant.
			"test": "ok",
		},
		"status": "in_progress",
	}
	resp, err := h.client.Put(fmt.Sprintf("/inspections/%d", h.ctx.InspectionID), body, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepSaveInspection() []report.StepResult {
	const name = "save_inspection"
	resp, err := h.client.Post(fmt.Sprintf("/inspections/%d/save", h.ctx.InspectionID), nil, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	if ok {
		// Saving triggers report creation; fetch the detail for its id.
		g, err := h.client.Get(fmt.Sprintf("/inspections/%d", h.ctx.InspectionID), h.ctx.AdminToken, nil)
		if err != nil {
			return one(record(name, resp, false, err.Error(), nil))
		}
		if g.OK() {
			var payload api.InspectionPayload
			if err := g.DecodeData(&payload); err == nil {
				h.ctx.ReportID = payload.ReportID
			}
		}
		ok = h.ctx.ReportID != 0
	}
	return one(record(name, resp, ok, "", map[string]any{"report_id": h.ctx.ReportID}))
}

func (h *Harness) stepCompleteInspection() []report.StepResult {
	const name = "complete_inspection"
	resp, err := h.client.Post(fmt.Sprintf("/inspections/%d/complete", h.ctx.InspectionID), nil, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepWorkOrderCompleted() []report.StepResult {
	const name = "work_order_status_completed"
	resp, err := h.client.Put(
		fmt.Sprintf("/work-orders/%d/status", h.ctx.WorkOrderID),
		map[string]any{"status": "completed"}, h.ctx.AdminToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepDownloadUnsigned() []report.StepResult {
	const name = "download_report_unsigned"
	resp, err := h.client.Get(fmt.Sprintf("/reports/%d/download", h.ctx.ReportID), h.ctx.AdminToken, nil)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.Status == 200 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf")
	return one(record(name, resp, ok, "", nil))
}

func (h *Harness) stepSignWithTechnician() []report.StepResult {
	const name = "sign_report_with_technician"
	login, err := h.client.Post("/auth/login", map[string]any{
		"email":    h.cfg.TechEmail,
		"password": h.cfg.TechPassword,
	}, "")
	if err != nil {
		return one(fail(name, err))
	}
	if !login.OK() {
		return one(record(name, login, false, "tech login failed", nil))
	}
	h.ctx.TechToken = api.LoginToken(login)

	g, err := h.client.Get(fmt.Sprintf("/reports/%d/signing-data", h.ctx.ReportID), h.ctx.TechToken, nil)
	if err != nil {
		return one(fail(name, err))
	}
	if !g.OK() {
		return one(record(name, g, false, "signing data fetch failed", nil))
	}
	var signing api.SigningPayload
	if err := g.DecodeData(&signing); err != nil || signing.PDFBase64 == "" {
		return one(record(name, g, false, "signing data missing pdf payload", nil))
	}

	resp, err := h.client.Post(fmt.Sprintf("/reports/%d/sign", h.ctx.ReportID), map[string]any{
		"pin":             h.cfg.TechPIN,
		"signedPdfBase64": signing.PDFBase64,
	}, h.ctx.TechToken)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.OK(), "", nil))
}

func (h *Harness) stepVerifySignedPath() []report.StepResult {
	const name = "verify_signed_path"
	resp, err := h.client.Get(fmt.Sprintf("/reports/%d", h.ctx.ReportID), h.ctx.AdminToken, nil)
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.OK()
	var payload api.ReportPayload
	if ok {
		if err := resp.DecodeData(&payload); err != nil {
			ok = false
		} else {
			ok = payload.SignedPDFPath != "" && payload.IsSigned
		}
	}
	return one(record(name, resp, ok, "", map[string]any{
		"signed_pdf_path": payload.SignedPDFPath,
		"is_signed":       payload.IsSigned,
	}))
}

func (h *Harness) stepDownloadSigned() []report.StepResult {
	const name = "download_report_signed"
	resp, err := h.client.Get(
		fmt.Sprintf("/reports/%d/download", h.ctx.ReportID),
		h.ctx.AdminToken, url.Values{"signed": {"true"}})
	if err != nil {
		return one(fail(name, err))
	}
	ok := resp.Status == 200 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf")
	return one(record(name, resp, ok, "", nil))
}

func (h *Harness) stepPublicQR() []report.StepResult {
	const name = "public_qr"
	rep, err := h.client.Get(fmt.Sprintf("/reports/%d", h.ctx.ReportID), h.ctx.AdminToken, nil)
	if err != nil {
		return one(fail(name, err))
	}
	if !rep.OK() {
		return one(record(name, rep, false, "report fetch failed", nil))
	}
	var payload api.ReportPayload
	if err := rep.DecodeData(&payload); err != nil {
		return one(record(name, rep, false, "report payload malformed", nil))
	}
	resp, err := h.client.Get("/reports/public/"+url.PathEscape(payload.QRToken), "", nil)
	if err != nil {
		return one(fail(name, err))
	}
	return one(record(name, resp, resp.Status == 200 && resp.OK(), "", nil))
}

func (h *Harness) stepWorkOrderStatusFlow() []report.StepResult {
	results := make([]report.StepResult, 0, 2)
	for _, status := range []string{"approved", "sent"} {
		name := "work_order_status_" + status
		resp, err := h.client.Put(
			fmt.Sprintf("/work-orders/%d/status", h.ctx.WorkOrderID),
			map[string]any{"status": status}, h.ctx.AdminToken)
		if err != nil {
			results = append(results, fail(name, err))
			continue
		}
		results = append(results, record(name, resp, resp.OK(), "", nil))
	}
	return results
}
