// Package apitest runs an in-memory stand-in for the muayene backend
// so the harness can be exercised end to end without a real server.
// Only the surface the verification pipeline touches is implemented.
package apitest

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var signingSecret = []byte("apitest-signing-secret")

// minimal but structurally valid PDF body
const pdfBody = "%PDF-1.4\n1 0 obj<</Type/Catalog>>endobj\ntrailer<</Root 1 0 R>>\n%%EOF\n"

// Options select fault-injection behavior.
type Options struct {
	// JobCompletesAfter is the number of status polls a report job
	// stays pending before turning completed. Zero completes on the
	// first poll; a negative value never completes.
	JobCompletesAfter int
	// BreakAsyncEnqueue makes POST /reports/{id}/prepare-async fail
	// with a 500 so callers must fall back to synchronous prepare.
	BreakAsyncEnqueue bool
	// MalformedPDFOnce serves a non-PDF signing payload until the
	// report is regenerated through the synchronous prepare endpoint.
	MalformedPDFOnce bool
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server
	opts  Options
	store *store
}

// New starts a fake backend. Callers must Close it.
func New(opts Options) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{opts: opts, store: newStore()}

	r := gin.New()
	r.GET("/api/health", func(c *gin.Context) { ok(c, nil) })
	r.POST("/api/auth/login", s.login)
	r.POST("/api/offers/track/:token/accept", s.acceptOffer)
	r.GET("/api/reports/public/:qrToken", s.publicReport)

	auth := r.Group("/api", s.requireAuth)
	{
		auth.GET("/auth/profile", s.profile)
		auth.POST("/customer-companies", s.createCustomer)
		auth.POST("/equipment", s.createEquipment)
		auth.POST("/offers", s.createOffer)
		auth.GET("/offers/:id", s.getOffer)
		auth.POST("/offers/:id/approve", s.approveOffer)
		auth.POST("/offers/:id/send", s.sendOffer)
		auth.POST("/offers/:id/convert-to-work-order", s.convertOffer)
		auth.GET("/inspections", s.listInspections)
		auth.GET("/inspections/:id", s.getInspection)
		auth.POST("/inspections/:id/photos", s.uploadPhotos)
		auth.PUT("/inspections/:id", s.updateInspection)
		auth.POST("/inspections/:id/save", s.saveInspection)
		auth.POST("/inspections/:id/complete", s.completeInspection)
		auth.PUT("/work-orders/:id/status", s.setWorkOrderStatus)
		auth.POST("/reports/:id/prepare-async", s.prepareAsync)
		auth.GET("/reports/jobs/:jobId", s.jobStatus)
		auth.POST("/reports/:id/prepare", s.prepareSync)
		auth.GET("/reports/:id", s.getReport)
		auth.GET("/reports/:id/signing-data", s.signingData)
		auth.GET("/reports/:id/download", s.download)
		auth.POST("/reports/:id/sign", s.sign)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the API root the harness should point at.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// PrepareSyncCalls reports how many synchronous prepare requests the
// server has seen.
func (s *Server) PrepareSyncCalls() int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.store.prepareSyncCalls
}

// JobPollCalls reports how many job status requests the server has seen.
func (s *Server) JobPollCalls() int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.store.jobPollCalls
}

func ok(c *gin.Context, data any) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func failWith(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failWith(c, http.StatusBadRequest, "invalid body")
		return
	}
	s.store.mu.Lock()
	u, found := s.store.users[body.Email]
	s.store.mu.Unlock()
	if !found || u.Password != body.Password {
		failWith(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	claims := jwt.MapClaims{
		"sub":  u.Email,
		"role": u.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingSecret)
	if err != nil {
		failWith(c, http.StatusInternalServerError, "token signing failed")
		return
	}
	ok(c, gin.H{
		"token": token,
		"user":  gin.H{"email": u.Email, "name": u.Name, "role": u.Role},
	})
}

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		failWith(c, http.StatusUnauthorized, "missing bearer token")
		c.Abort()
		return
	}
	parsed, err := jwt.Parse(header[len(prefix):], func(t *jwt.Token) (any, error) {
		return signingSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		failWith(c, http.StatusUnauthorized, "invalid token")
		c.Abort()
		return
	}
	claims, _ := parsed.Claims.(jwt.MapClaims)
	email, _ := claims["sub"].(string)
	s.store.mu.Lock()
	u, found := s.store.users[email]
	s.store.mu.Unlock()
	if !found {
		failWith(c, http.StatusUnauthorized, "unknown user")
		c.Abort()
		return
	}
	c.Set("user", u)
}

func currentUser(c *gin.Context) *user {
	v, _ := c.Get("user")
	u, _ := v.(*user)
	return u
}

func (s *Server) profile(c *gin.Context) {
	u := currentUser(c)
	ok(c, gin.H{"email": u.Email, "name": u.Name, "role": u.Role})
}

func (s *Server) createCustomer(c *gin.Context) {
	var body struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		TaxNumber string `json:"taxNumber"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		failWith(c, http.StatusBadRequest, "invalid customer")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	cust := &customer{ID: s.store.nextID(), Name: body.Name, Email: body.Email, TaxNumber: body.TaxNumber}
	s.store.customers[cust.ID] = cust
	ok(c, gin.H{"id": cust.ID})
}

func (s *Server) createEquipment(c *gin.Context) {
	var body struct {
		Name     string         `json:"name"`
		Type     string         `json:"type"`
		Template map[string]any `json:"template"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" || len(body.Template) == 0 {
		failWith(c, http.StatusBadRequest, "invalid equipment")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	eq := &equipment{ID: s.store.nextID(), Name: body.Name, Type: body.Type, Template: body.Template}
	s.store.equipment[eq.ID] = eq
	ok(c, gin.H{"id": eq.ID})
}

func (s *Server) createOffer(c *gin.Context) {
	var body struct {
		CustomerCompanyID int64 `json:"customerCompanyId"`
		Items             []struct {
			EquipmentID int64 `json:"equipmentId"`
			Quantity    int64 `json:"quantity"`
			UnitPrice   int64 `json:"unitPrice"`
		} `json:"items"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Items) == 0 {
		failWith(c, http.StatusBadRequest, "invalid offer")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.customers[body.CustomerCompanyID]; !found {
		failWith(c, http.StatusNotFound, "customer not found")
		return
	}
	o := &offer{ID: s.store.nextID(), CustomerID: body.CustomerCompanyID, Notes: body.Notes, Status: "draft"}
	for _, it := range body.Items {
		if _, found := s.store.equipment[it.EquipmentID]; !found {
			failWith(c, http.StatusNotFound, "equipment not found")
			return
		}
		o.Items = append(o.Items, offerItem{
			EquipmentID: it.EquipmentID,
			Quantity:    it.Quantity,
			UnitPrice:   decimal.NewFromInt(it.UnitPrice),
		})
	}
	s.store.offers[o.ID] = o
	ok(c, gin.H{"id": o.ID, "total": o.total().String()})
}

func (s *Server) offerByParam(c *gin.Context) *offer {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	o, found := s.store.offers[id]
	if !found {
		failWith(c, http.StatusNotFound, "offer not found")
		return nil
	}
	return o
}

func (s *Server) getOffer(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o := s.offerByParam(c)
	if o == nil {
		return
	}
	ok(c, gin.H{
		"id":             o.ID,
		"status":         o.Status,
		"tracking_token": o.TrackingToken,
		"total":          o.total().String(),
	})
}

func (s *Server) approveOffer(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o := s.offerByParam(c)
	if o == nil {
		return
	}
	o.Status = "approved"
	ok(c, nil)
}

func (s *Server) sendOffer(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o := s.offerByParam(c)
	if o == nil {
		return
	}
	if o.Status != "approved" {
		failWith(c, http.StatusBadRequest, "offer not approved")
		return
	}
	o.Status = "sent"
	if o.TrackingToken == "" {
		o.TrackingToken = uuid.NewString()
	}
	ok(c, nil)
}

func (s *Server) acceptOffer(c *gin.Context) {
	token := c.Param("token")
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, o := range s.store.offers {
		if o.TrackingToken != "" && o.TrackingToken == token {
			o.Accepted = true
			ok(c, gin.H{"id": o.ID, "status": o.Status})
			return
		}
	}
	failWith(c, http.StatusNotFound, "offer not found")
}

func (s *Server) convertOffer(c *gin.Context) {
	var body struct {
		OpeningDate   string `json:"openingDate"`
		TaskStartDate string `json:"taskStartDate"`
		TaskEndDate   string `json:"taskEndDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.TaskStartDate == "" {
		failWith(c, http.StatusBadRequest, "invalid conversion request")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	o := s.offerByParam(c)
	if o == nil {
		return
	}
	if !o.Accepted {
		failWith(c, http.StatusBadRequest, "offer not accepted")
		return
	}
	wo := &workOrder{ID: s.store.nextID(), OfferID: o.ID, Status: "open"}
	s.store.workOrders[wo.ID] = wo
	// One inspection per offer item, mirroring the real backend.
	for range o.Items {
		insp := &inspection{
			ID:          s.store.nextID(),
			WorkOrderID: wo.ID,
			Status:      "pending",
			Data:        map[string]any{},
		}
		s.store.inspections[insp.ID] = insp
	}
	ok(c, gin.H{"id": wo.ID})
}

func (s *Server) listInspections(c *gin.Context) {
	workOrderID, _ := strconv.ParseInt(c.Query("workOrderId"), 10, 64)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	list := make([]gin.H, 0)
	for _, insp := range s.store.inspections {
		if insp.WorkOrderID == workOrderID {
			list = append(list, gin.H{"id": insp.ID, "status": insp.Status})
		}
	}
	ok(c, gin.H{"inspections": list})
}

func (s *Server) inspectionByParam(c *gin.Context) *inspection {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	insp, found := s.store.inspections[id]
	if !found {
		failWith(c, http.StatusNotFound, "inspection not found")
		return nil
	}
	return insp
}

func (s *Server) getInspection(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	insp := s.inspectionByParam(c)
	if insp == nil {
		return
	}
	ok(c, gin.H{"id": insp.ID, "status": insp.Status, "report_id": insp.ReportID})
}

func (s *Server) uploadPhotos(c *gin.Context) {
	fieldName := c.PostForm("fieldName")
	file, err := c.FormFile("photos")
	if err != nil || fieldName == "" {
		failWith(c, http.StatusBadRequest, "photo upload requires a file and fieldName")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	insp := s.inspectionByParam(c)
	if insp == nil {
		return
	}
	insp.Photos = append(insp.Photos, file.Filename)
	ok(c, gin.H{"count": len(insp.Photos)})
}

func (s *Server) updateInspection(c *gin.Context) {
	var body struct {
		InspectionData map[string]any `json:"inspectionData"`
		Status         string         `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failWith(c, http.StatusBadRequest, "invalid inspection update")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	insp := s.inspectionByParam(c)
	if insp == nil {
		return
	}
	for k, v := range body.InspectionData {
		insp.Data[k] = v
	}
	if body.Status != "" {
		insp.Status = body.Status
	}
	ok(c, nil)
}

func (s *Server) saveInspection(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	insp := s.inspectionByParam(c)
	if insp == nil {
		return
	}
	if insp.ReportID == 0 {
		rep := &reportRecord{
			ID:           s.store.nextID(),
			InspectionID: insp.ID,
			Malformed:    s.opts.MalformedPDFOnce,
			QRToken:      uuid.NewString(),
		}
		s.store.reports[rep.ID] = rep
		insp.ReportID = rep.ID
	}
	ok(c, gin.H{"report_id": insp.ReportID})
}

func (s *Server) completeInspection(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	insp := s.inspectionByParam(c)
	if insp == nil {
		return
	}
	insp.Status = "completed"
	ok(c, nil)
}

func (s *Server) setWorkOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		failWith(c, http.StatusBadRequest, "invalid status update")
		return
	}
	switch body.Status {
	case "approved", "sent", "completed":
	default:
		failWith(c, http.StatusBadRequest, "unsupported status")
		return
	}
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	wo, found := s.store.workOrders[id]
	if !found {
		failWith(c, http.StatusNotFound, "work order not found")
		return
	}
	wo.Status = body.Status
	ok(c, gin.H{"id": wo.ID, "status": wo.Status})
}

func (s *Server) reportByParam(c *gin.Context) *reportRecord {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	rep, found := s.store.reports[id]
	if !found {
		failWith(c, http.StatusNotFound, "report not found")
		return nil
	}
	return rep
}

func (s *Server) prepareAsync(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.enqueueCalls++
	if s.opts.BreakAsyncEnqueue {
		failWith(c, http.StatusInternalServerError, "job queue unavailable")
		return
	}
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	j := &job{ID: uuid.NewString(), ReportID: rep.ID}
	s.store.jobs[j.ID] = j
	c.JSON(http.StatusAccepted, gin.H{"success": true, "data": gin.H{"jobId": j.ID}})
}

func (s *Server) jobStatus(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.jobPollCalls++
	j, found := s.store.jobs[c.Param("jobId")]
	if !found {
		failWith(c, http.StatusNotFound, "job not found")
		return
	}
	if s.opts.JobCompletesAfter < 0 {
		ok(c, gin.H{"status": "processing"})
		return
	}
	if j.Polls < s.opts.JobCompletesAfter {
		j.Polls++
		ok(c, gin.H{"status": "processing"})
		return
	}
	if rep := s.store.reports[j.ReportID]; rep != nil {
		rep.Prepared = true
	}
	ok(c, gin.H{"status": "completed"})
}

func (s *Server) prepareSync(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.prepareSyncCalls++
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	rep.Prepared = true
	rep.Malformed = false
	ok(c, nil)
}

func (s *Server) getReport(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	data := gin.H{
		"id":        rep.ID,
		"is_signed": rep.IsSigned,
		"qr_token":  rep.QRToken,
	}
	if rep.Prepared {
		data["unsigned_pdf_path"] = reportPath(rep.ID, false)
	}
	if rep.IsSigned {
		data["signed_pdf_path"] = reportPath(rep.ID, true)
	}
	ok(c, data)
}

func (s *Server) signingData(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	if !rep.Prepared {
		failWith(c, http.StatusConflict, "report not prepared")
		return
	}
	payload := []byte(pdfBody)
	if rep.Malformed {
		payload = []byte("garbage, not a pdf")
	}
	ok(c, gin.H{"pdfBase64": base64.StdEncoding.EncodeToString(payload)})
}

func (s *Server) download(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	if !rep.Prepared {
		failWith(c, http.StatusConflict, "report not prepared")
		return
	}
	if c.Query("signed") == "true" && !rep.IsSigned {
		failWith(c, http.StatusConflict, "report not signed")
		return
	}
	c.Data(http.StatusOK, "application/pdf", []byte(pdfBody))
}

func (s *Server) sign(c *gin.Context) {
	var body struct {
		PIN             string `json:"pin"`
		SignedPDFBase64 string `json:"signedPdfBase64"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SignedPDFBase64 == "" {
		failWith(c, http.StatusBadRequest, "invalid signing request")
		return
	}
	u := currentUser(c)
	if u.PIN == "" || u.PIN != body.PIN {
		failWith(c, http.StatusForbidden, "signing pin rejected")
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	rep := s.reportByParam(c)
	if rep == nil {
		return
	}
	rep.IsSigned = true
	rep.SignedBy = u.Email
	ok(c, nil)
}

func (s *Server) publicReport(c *gin.Context) {
	token := c.Param("qrToken")
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, rep := range s.store.reports {
		if token != "" && rep.QRToken == token {
			ok(c, gin.H{"id": rep.ID, "is_signed": rep.IsSigned})
			return
		}
	}
	failWith(c, http.StatusNotFound, "report not found")
}

func reportPath(id int64, signed bool) string {
	suffix := "unsigned"
	if signed {
		suffix = "signed"
	}
	return "/uploads/reports/" + strconv.FormatInt(id, 10) + "_" + suffix + ".pdf"
}
