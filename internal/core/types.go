package core

// Row outcome statuses. A validation failure never reaches the directory;
// a failed row was rejected or errored there.
const (
	StatusCreated          = "created"
	StatusFailed           = "failed"
	StatusValidationFailed = "validation_failed"
)

// CreationRequest is one normalized hospital-creation request parsed from a
// CSV row. Immutable once produced by the parser. Phone is nil when the
// cell was absent or blank.
type CreationRequest struct {
	Name    string
	Address string
	Phone   *string
}

// RowOutcome is the result of attempting to create one row's hospital.
// Row is the 1-based position in the uploaded file, kept for diagnostics:
// the outcome list is in completion order, not input order.
type RowOutcome struct {
	Row        int     `json:"row"`
	HospitalID *string `json:"hospital_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Error      *string `json:"error"`
}

// BulkResult is the aggregate outcome of one bulk upload.
// ProcessedHospitals + FailedHospitals always equals TotalHospitals.
type BulkResult struct {
	BatchID               string       `json:"batch_id"`
	TotalHospitals        int          `json:"total_hospitals"`
	ProcessedHospitals    int          `json:"processed_hospitals"`
	FailedHospitals       int          `json:"failed_hospitals"`
	ProcessingTimeSeconds float64      `json:"processing_time_seconds"`
	BatchActivated        bool         `json:"batch_activated"`
	Hospitals             []RowOutcome `json:"hospitals"`
}
