package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	InternalServerErrorCode = 500
	ServiceUnavailableCode  = 503
	TooManyRequestsCode     = 429
	UnprocessableCode       = 422

	DateFormat = "2006-01-02"
)
