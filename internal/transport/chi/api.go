package chi

import (
	"time"

	domrec "github.com/kailas-cloud/facetdex/internal/domain/record"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
)

// ErrorCode is a machine-readable error kind.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeForbidden        ErrorCode = "forbidden"
	CodeNotFound         ErrorCode = "not_found"
	CodeRecordNotFound   ErrorCode = "record_not_found"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// PageResponse is a limit/offset page.
type PageResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

// UpsertResponse is returned by PUT.
type UpsertResponse struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// questionnaireToAPI flattens a rendered record into one JSON object.
// Payload fields sit next to the record's own fields.
func questionnaireToAPI(v listinguc.View, a domrec.Audience) map[string]any {
	out := make(map[string]any, len(v.Scalars)+len(v.Lists)+5)
	for k, s := range v.Scalars {
		out[k] = s
	}
	for k, l := range v.Lists {
		out[k] = l
	}
	out[domrec.FieldID] = v.ID
	out[domrec.FieldModeration] = v.Moderated
	if a == domrec.Staff {
		out[domrec.FieldDeleted] = v.Deleted
	}
	out[domrec.FieldCreatedAt] = v.CreatedAt.UTC().Format(time.RFC3339)
	out[domrec.FieldUpdatedAt] = v.UpdatedAt.UTC().Format(time.RFC3339)
	return out
}
