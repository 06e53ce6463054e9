package tracker

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/relabs-tech/energytrack/core/schema"
)

const entryRequestSchemaID = "https://energytrack.relabs.tech/entry-request.json"

const entryRequestSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"$id": "https://energytrack.relabs.tech/entry-request.json",
	"type": "object",
	"required": ["timestamp"],
	"properties": {
		"timestamp": {
			"type": "string"
		},
		"description": {
			"type": ["string", "null"]
		},
		"energy": {
			"type": ["integer", "null"],
			"minimum": 1,
			"maximum": 10
		}
	}
}`

// timestampFormatNaive accepts timestamps without timezone suffix,
// they are interpreted as UTC
const timestampFormatNaive = "2006-01-02T15:04:05"

// entryRequest is the add-entry request body after validation
type entryRequest struct {
	Timestamp   time.Time
	Description *string
	Energy      *int
}

type validationResponse struct {
	Error   string          `json:"error"`
	Details []schema.Detail `json:"details"`
}

// validateEntryRequest validates the add-entry request body. It returns
// the parsed request, or a non-empty list of details describing everything
// that is wrong with the body.
//
// The json schema covers the shape of the body, the two rules it cannot
// express are checked here: the timestamp must parse, and at least one of
// description and energy must be provided.
func (b *Backend) validateEntryRequest(body string) (entryRequest, []schema.Detail) {
	var request entryRequest

	err := b.validator.ValidateString(body, entryRequestSchemaID)
	if err != nil {
		verr := &schema.ValidationError{}
		if errors.As(err, &verr) {
			return request, verr.Details
		}
		return request, []schema.Detail{{Field: "(root)", Type: "json", Message: "invalid json data"}}
	}

	var raw struct {
		Timestamp   string  `json:"timestamp"`
		Description *string `json:"description"`
		Energy      *int    `json:"energy"`
	}
	err = json.Unmarshal([]byte(body), &raw)
	if err != nil {
		return request, []schema.Detail{{Field: "(root)", Type: "json", Message: "invalid json data"}}
	}

	details := []schema.Detail{}
	timestamp, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		details = append(details, schema.Detail{
			Field:   "timestamp",
			Type:    "format",
			Message: "illegal timestamp: " + raw.Timestamp,
		})
	}
	if raw.Description == nil && raw.Energy == nil {
		details = append(details, schema.Detail{
			Field:   "entry",
			Type:    "required",
			Message: "at least one of description or energy must be provided",
		})
	}
	if len(details) > 0 {
		return request, details
	}

	request.Timestamp = timestamp
	request.Description = raw.Description
	request.Energy = raw.Energy
	return request, nil
}

// parseTimestamp parses RFC3339 timestamps like "2022-03-15T14:30:00Z".
// Timestamps without timezone are interpreted as UTC.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t.UTC(), nil
	}
	t, naiveErr := time.Parse(timestampFormatNaive, value)
	if naiveErr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// writeValidationError answers the request with status 422 and a json body
// listing the validation details
func writeValidationError(w http.ResponseWriter, details []schema.Detail) {
	response := validationResponse{
		Error:   "validation failed",
		Details: details,
	}
	jsonData, _ := json.MarshalWithOption(response, json.DisableHTMLEscape())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	w.Write(jsonData)
}
