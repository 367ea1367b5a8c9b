package transposit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-transposit-sdk/transport"
)

// OperationStatus is the final status of an operation run.
type OperationStatus string

const (
	StatusSuccess   OperationStatus = "SUCCESS"
	StatusError     OperationStatus = "ERROR"
	StatusCancelled OperationStatus = "CANCELLED"
	StatusTimeout   OperationStatus = "TIMEOUT"
)

// Parameters are the named arguments of an operation.
type Parameters map[string]string

// endRequestLog is the envelope returned by the execute endpoint.
type endRequestLog struct {
	Status    OperationStatus `json:"status"`
	RequestID string          `json:"requestId"`
	Result    struct {
		Results      []json.RawMessage `json:"results"`
		ExceptionLog *struct {
			Message string `json:"message"`
		} `json:"exceptionLog"`
	} `json:"result"`
}

// OperationResponse is the result of a successful operation run.
type OperationResponse struct {
	OperationID string
	RequestID   string
	Results     []json.RawMessage
}

// Value returns the first result. It fails with ErrNoResults when the
// operation returned none.
func (r *OperationResponse) Value() (json.RawMessage, error) {
	if len(r.Results) == 0 {
		return nil, ErrNoResults
	}
	return r.Results[0], nil
}

// ResultsAs decodes every result into T.
func ResultsAs[T any](r *OperationResponse) ([]T, error) {
	out := make([]T, 0, len(r.Results))
	for i, raw := range r.Results {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to decode result %d of %s: %w", i, r.OperationID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ValueAs decodes the first result into T.
func ValueAs[T any](r *OperationResponse) (T, error) {
	var v T
	raw, err := r.Value()
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("failed to decode value of %s: %w", r.OperationID, err)
	}
	return v, nil
}

// Run executes the app operation operationID with params. A run that
// completes with any status other than SUCCESS fails with *OperationError.
func (c *Client) Run(ctx context.Context, operationID string, params Parameters) (*OperationResponse, error) {
	if operationID == "" {
		return nil, ErrEmptyOperation
	}
	if params == nil {
		params = Parameters{}
	}

	path := RouteExecute + url.PathEscape(operationID)
	resp, err := c.http.Call(ctx, http.MethodPost, path, transport.Params{
		Body: map[string]any{"parameters": params},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope endRequestLog
	if err := transport.DecodeJSON(resp, http.MethodPost, path, &envelope); err != nil {
		return nil, err
	}

	if envelope.Status != StatusSuccess {
		message := OperationFallbackMessage
		if envelope.Result.ExceptionLog != nil && envelope.Result.ExceptionLog.Message != "" {
			message = envelope.Result.ExceptionLog.Message
		}
		c.logger.Debug().
			Str("operation", operationID).
			Str("request_id", envelope.RequestID).
			Str("status", string(envelope.Status)).
			Msg("operation did not succeed")
		return nil, &OperationError{
			OperationID: operationID,
			RequestID:   envelope.RequestID,
			Status:      envelope.Status,
			Message:     message,
		}
	}

	if envelope.Result.Results == nil {
		return nil, transport.ResponseError(resp, http.MethodPost, path, UnexpectedSchemaMessage)
	}

	return &OperationResponse{
		OperationID: operationID,
		RequestID:   envelope.RequestID,
		Results:     envelope.Result.Results,
	}, nil
}
