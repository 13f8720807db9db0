package harness

// Context is the shared mutable bag of identifiers produced by earlier
// steps and consumed by later ones. One instance lives for exactly one
// run; each field is set by a single producer step and only read
// afterwards. Zero values mean "not yet produced": steps that depend on
// a missing identifier still fire (with a zero id in the path) and fail
// gracefully, which keeps dependency breaks visible in the result log.
type Context struct {
	// AdminToken is produced by login_admin, consumed by every
	// authenticated admin call.
	AdminToken string
	// TechToken is produced and consumed inside sign_report_with_technician.
	TechToken string

	// CustomerID: produced by create_customer, consumed by create_offer.
	CustomerID int64
	// EquipmentID: produced by create_equipment, consumed by create_offer.
	EquipmentID int64
	// OfferID: produced by create_offer, consumed by the offer and
	// work-order conversion steps.
	OfferID int64
	// TrackingToken: produced by send_offer, consumed by public_offer_accept.
	TrackingToken string
	// WorkOrderID: produced by convert_to_work_order, consumed by the
	// inspection listing and status steps.
	WorkOrderID int64
	// InspectionID: produced by list_inspections, consumed by the
	// inspection steps.
	InspectionID int64
	// ReportID: produced by save_inspection, consumed by every report step.
	ReportID int64
}
