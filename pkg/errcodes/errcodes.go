package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidUserID       failure.ErrorCode = "InvalidUserID"

	CourseNotFound      failure.ErrorCode = "CourseNotFound"
	InvalidCourseID     failure.ErrorCode = "InvalidCourseID"
	InvalidCourseFilter failure.ErrorCode = "InvalidCourseFilter"
	ReviewNotFound      failure.ErrorCode = "ReviewNotFound"
	InvalidReviewID     failure.ErrorCode = "InvalidReviewID"
	InvalidReview       failure.ErrorCode = "InvalidReview"
	ReviewAlreadyExists failure.ErrorCode = "ReviewAlreadyExists"
)
