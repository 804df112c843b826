package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrImageFileRequired = ErrorResponse{
		Status:  "error",
		Error:   "image_file_required",
		Details: "Multipart field image_file is required",
	}

	ErrFileTooLarge = ErrorResponse{
		Status: "error",
		Error:  "file_too_large",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}

	ErrUnavailable = ErrorResponse{
		Status: "error",
		Error:  "unavailable",
	}
)
