package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the backend's standard JSON response wrapper. Some
// deployments return the login token at the top level instead of under
// data; the Token field keeps that compatibility path alive.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

// Response is the outcome of one HTTP call. Envelope is nil when the
// body did not parse as JSON.
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	Envelope *Envelope
}

func newResponse(status int, header http.Header, body []byte) *Response {
	r := &Response{Status: status, Header: header, Body: body}
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil {
		r.Envelope = &env
	}
	return r
}

// OK reports logical success: a 2xx status and a parseable body whose
// success field is true. An unparseable body is never OK.
func (r *Response) OK() bool {
	if r == nil {
		return false
	}
	return r.Status/100 == 2 && r.Envelope != nil && r.Envelope.Success
}

// DecodeData unmarshals the envelope's data payload into out. It fails
// when the body was unparseable or carried no data.
func (r *Response) DecodeData(out any) error {
	if r == nil || r.Envelope == nil || len(r.Envelope.Data) == 0 {
		return errNoData
	}
	return json.Unmarshal(r.Envelope.Data, out)
}

// JSON returns the best-effort parsed body for diagnostics, or nil when
// the body was not JSON.
func (r *Response) JSON() any {
	if r == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil
	}
	return v
}
