package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is treats two AppErrors with the same code as the same error, so
// errors.Is matches a sentinel even after WithError replaced the cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// WithMessage returns a copy carrying a request-specific message while keeping
// the error identity (errors.Is still matches the sentinel).
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
		Err:        e,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing credentials",
		StatusCode: 401,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "Access denied",
		StatusCode: 403,
	}

	ErrClassNotFound = &AppError{
		Code:       "CLASS_NOT_FOUND",
		Message:    "Class not found",
		StatusCode: 404,
	}

	ErrSessionEnded = &AppError{
		Code:       "SESSION_ENDED",
		Message:    "Class session has ended. Attendance cannot be marked.",
		StatusCode: 410,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image data",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected in captured image",
		StatusCode: 422,
	}

	ErrMultipleFaces = &AppError{
		Code:       "MULTIPLE_FACES",
		Message:    "Multiple faces detected. Please upload an image with only one face",
		StatusCode: 422,
	}

	ErrNoMatch = &AppError{
		Code:       "NO_MATCH",
		Message:    "No matching student found. Please ensure facial data is registered.",
		StatusCode: 404,
	}

	ErrAttendanceExists = &AppError{
		Code:       "ATTENDANCE_EXISTS",
		Message:    "Attendance already recorded for this student and class session",
		StatusCode: 409,
	}

	ErrFacialDataNotFound = &AppError{
		Code:       "FACIAL_DATA_NOT_FOUND",
		Message:    "No facial data found",
		StatusCode: 404,
	}

	ErrStudentNotFound = &AppError{
		Code:       "STUDENT_NOT_FOUND",
		Message:    "Student not found",
		StatusCode: 404,
	}

	ErrInvalidStatus = &AppError{
		Code:       "INVALID_STATUS",
		Message:    "Invalid attendance status",
		StatusCode: 422,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Too many requests. Please try again later.",
		StatusCode: 429,
	}
)

// SessionEndedError builds the SessionEnded failure naming the session so the
// caller can tell which window was missed.
func SessionEndedError(classInfo string) *AppError {
	return ErrSessionEnded.WithMessage(
		fmt.Sprintf("Class session %s has ended. Attendance cannot be marked.", classInfo))
}
