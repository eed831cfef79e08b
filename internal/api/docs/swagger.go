package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// RecognizeRequest represents the request body for a recognition scan
type RecognizeRequest struct {
	Image string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

// ClassInfoData identifies the class a scan ran against
type ClassInfoData struct {
	ClassID    int64  `json:"class_id" example:"42"`
	ModuleCode string `json:"module_code" example:"CS101"`
	ModuleName string `json:"module_name" example:"Introduction to Computer Science"`
	ClassType  string `json:"class_type" example:"lecture"`
	Date       string `json:"date" example:"2026-03-02"`
}

// RecognizeResponse represents a successful recognition result
type RecognizeResponse struct {
	StudentID     int64         `json:"student_id" example:"17"`
	StudentName   string        `json:"student_name" example:"Amina Yusuf"`
	StudentNumber string        `json:"student_number" example:"S1001"`
	Similarity    float64       `json:"similarity" example:"87.12"`
	AlreadyMarked bool          `json:"already_marked" example:"false"`
	ClassInfo     ClassInfoData `json:"class_info"`
	Message       string        `json:"message" example:"Attendance marked for Amina Yusuf in CS101"`
}

// UploadFaceRequest represents the request body for a facial reference upload
type UploadFaceRequest struct {
	Image string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

// FacialDataResponse represents a stored facial reference
type FacialDataResponse struct {
	StudentID  int64  `json:"student_id" example:"17"`
	ImagePath  string `json:"image_path" example:"student_S1001.jpg"`
	UploadedAt string `json:"uploaded_at" example:"2026-03-02T08:30:00Z"`
	Image      string `json:"image,omitempty" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

// ClassOverviewData summarizes one of today's classes for the scanner view
type ClassOverviewData struct {
	ClassID         int64  `json:"class_id" example:"42"`
	ModuleCode      string `json:"module_code" example:"CS101"`
	ModuleName      string `json:"module_name" example:"Introduction to Computer Science"`
	ClassType       string `json:"class_type" example:"lecture"`
	EnrolledCount   int    `json:"enrolled_count" example:"120"`
	FacialCount     int    `json:"facial_count" example:"95"`
	AttendanceCount int    `json:"attendance_count" example:"60"`
	IsActive        bool   `json:"is_active" example:"true"`
}

// ClassListResponse wraps the scanner class list
type ClassListResponse struct {
	Classes []ClassOverviewData `json:"classes"`
}

// RosterEntryData represents one student row in a class roster
type RosterEntryData struct {
	StudentID     int64  `json:"student_id" example:"17"`
	StudentName   string `json:"student_name" example:"Amina Yusuf"`
	StudentNumber string `json:"student_number" example:"S1001"`
	HasFacialData bool   `json:"has_facial_data" example:"true"`
}

// RosterResponse wraps a class roster
type RosterResponse struct {
	Roster []RosterEntryData `json:"roster"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"CLASS_NOT_FOUND"`
	Message string `json:"message" example:"Class session not found"`
}

// EmptyResponse represents an empty response body
type EmptyResponse struct{}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Rollcall Attendance API",
		Version:     "v0.1.0",
		Description: "Face-recognition attendance API for university class sessions",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/classes/:class_id/recognitions - Recognize a student
		endpoint.New(
			endpoint.POST,
			"/classes/{class_id}/recognitions",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recognize a student and mark attendance"),
			endpoint.WithDescription("Matches the captured image against the facial references of students enrolled in the class's module and marks attendance for the best match"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("class_id", parameter.Path, parameter.WithDescription("Class session identifier")),
			),
			endpoint.WithBody(RecognizeRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecognizeResponse{}, "201", "Attendance marked"),
				response.New(RecognizeResponse{AlreadyMarked: true}, "200", "Attendance was already marked"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "CLASS_NOT_FOUND", Message: "Class session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "NO_MATCH", Message: "No enrolled student matched the captured face"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "SESSION_ENDED", Message: "Class session has already ended"}, "410", "Gone"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/scanner/classes - Today's classes
		endpoint.New(
			endpoint.GET,
			"/scanner/classes",
			endpoint.WithTags("Scanner"),
			endpoint.WithSummary("List the lecturer's scannable classes for today"),
			endpoint.WithDescription("Returns today's not-yet-ended classes for the authenticated lecturer, with enrollment, facial coverage and attendance counts"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ClassListResponse{}, "200", "Classes retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/classes/:class_id/roster - Class roster
		endpoint.New(
			endpoint.GET,
			"/classes/{class_id}/roster",
			endpoint.WithTags("Scanner"),
			endpoint.WithSummary("Get the roster for a class session"),
			endpoint.WithDescription("Returns every student enrolled in the class's module with their facial data and attendance state"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("class_id", parameter.Path, parameter.WithDescription("Class session identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RosterResponse{}, "200", "Roster retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "CLASS_NOT_FOUND", Message: "Class session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// POST /v1/students/:student_id/face - Upload facial reference
		endpoint.New(
			endpoint.POST,
			"/students/{student_id}/face",
			endpoint.WithTags("Facial Data"),
			endpoint.WithSummary("Upload a student's facial reference"),
			endpoint.WithDescription("Stores the reference image for a student, replacing any previous one. The image must contain exactly one face."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("student_id", parameter.Path, parameter.WithDescription("Student identifier")),
			),
			endpoint.WithBody(UploadFaceRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FacialDataResponse{}, "201", "Facial reference stored"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "FORBIDDEN", Message: "Insufficient role"}, "403", "Forbidden"),
				response.New(ErrorResponse{Code: "STUDENT_NOT_FOUND", Message: "Student not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected, only one allowed"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /v1/students/:student_id/face - Get facial reference
		endpoint.New(
			endpoint.GET,
			"/students/{student_id}/face",
			endpoint.WithTags("Facial Data"),
			endpoint.WithSummary("Get a student's facial reference"),
			endpoint.WithDescription("Returns metadata about the student's stored facial reference"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("student_id", parameter.Path, parameter.WithDescription("Student identifier")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FacialDataResponse{}, "200", "Facial reference retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing token"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "STUDENT_NOT_FOUND", Message: "Student not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "FACIAL_DATA_NOT_FOUND", Message: "No facial reference stored for student"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"BearerAuth": {}}}),
		),

		// GET /health - Health check
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Health check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is healthy"),
			}),
		),

		// GET /ready - Readiness check
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness check"),
			endpoint.WithDescription("Verifies the database connection is available"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is ready"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "Database unavailable"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
