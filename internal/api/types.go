package api

import "errors"

var errNoData = errors.New("response carries no data payload")

// IDPayload is the data shape of create endpoints.
type IDPayload struct {
	ID int64 `json:"id"`
}

// LoginPayload is the data shape of POST /auth/login.
type LoginPayload struct {
	Token string `json:"token"`
}

// OfferPayload is the data shape of GET /offers/{id}.
type OfferPayload struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	TrackingToken string `json:"tracking_token"`
}

// InspectionListPayload is the data shape of GET /inspections.
type InspectionListPayload struct {
	Inspections []InspectionPayload `json:"inspections"`
}

// InspectionPayload is the data shape of GET /inspections/{id}.
type InspectionPayload struct {
	ID       int64  `json:"id"`
	Status   string `json:"status"`
	ReportID int64  `json:"report_id"`
}

// ReportPayload is the data shape of GET /reports/{id}.
type ReportPayload struct {
	ID              int64  `json:"id"`
	UnsignedPDFPath string `json:"unsigned_pdf_path"`
	SignedPDFPath   string `json:"signed_pdf_path"`
	IsSigned        bool   `json:"is_signed"`
	QRToken         string `json:"qr_token"`
}

// JobPayload is the data shape of report job enqueue and status calls.
type JobPayload struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// SigningPayload is the data shape of GET /reports/{id}/signing-data.
type SigningPayload struct {
	PDFBase64 string `json:"pdfBase64"`
}

// LoginToken extracts the session token from a login response,
// preferring data.token and falling back to the top-level token field.
// Returns the empty string when neither shape is present.
func LoginToken(r *Response) string {
	var payload LoginPayload
	if err := r.DecodeData(&payload); err == nil && payload.Token != "" {
		return payload.Token
	}
	if r != nil && r.Envelope != nil {
		return r.Envelope.Token
	}
	return ""
}
