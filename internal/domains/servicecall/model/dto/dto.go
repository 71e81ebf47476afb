package dto

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"comanda/internal/domains/servicecall/model"
	"comanda/shared/constant"
	"comanda/shared/failure"
	"comanda/shared/status"
	"comanda/shared/timezone"
)

// CreateCallRequest takes the reason as a numeric code, as text, or both.
type CreateCallRequest struct {
	ReasonCode *int    `json:"reason_code" validate:"omitempty"`
	Reason     string  `json:"reason"      validate:"omitempty,max=20"`
	Details    *string `json:"details"     validate:"omitempty,max=500"`
}

func (r *CreateCallRequest) Target() (status.CallReason, error) {
	return status.ResolveCallReason(r.ReasonCode, r.Reason) //nolint:wrapcheck
}

// NormalizedDetails trims details; blank details are stored as null.
func (r *CreateCallRequest) NormalizedDetails() *string {
	if r.Details == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*r.Details)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// HistoryFilter narrows a history listing. Limit zero means the configured default.
type HistoryFilter struct {
	TableUUID string
	Status    *status.CallStatus
	Since     *time.Time
	Limit     int
}

func (f *HistoryFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if value := query.Get(constant.RequestParamTableUUID); value != "" {
		f.TableUUID = value
	}

	if value := query.Get(constant.RequestParamStatus); value != "" {
		parsed, err := status.ParseCallStatus(value)
		if err != nil {
			return err //nolint:wrapcheck
		}

		f.Status = &parsed
	}

	if value := query.Get(constant.RequestParamSince); value != "" {
		since, err := time.Parse(constant.DateFormat, value)
		if err != nil {
			return failure.BadRequestFromString("since must be an RFC3339 timestamp") // nolint:wrapcheck
		}

		f.Since = &since
	}

	if value := query.Get(constant.RequestParamLimit); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 1 {
			return failure.InvalidLimitParam
		}

		f.Limit = limit
	}

	return nil
}

type CallResponse struct {
	ID          int64   `json:"id"`
	TableUUID   string  `json:"table_uuid"`
	TableName   string  `json:"table_name"`
	ReasonCode  int     `json:"reason_code"`
	Reason      string  `json:"reason"`
	StatusCode  int     `json:"status_code"`
	Status      string  `json:"status"`
	Details     *string `json:"details"`
	CreatedAt   string  `json:"created_at"`
	AttendedAt  *string `json:"attended_at"`
	CancelledAt *string `json:"cancelled_at"`
	AttendedBy  *string `json:"attended_by"`
}

func (r *CallResponse) FromModel(call model.ServiceCall) {
	r.ID = call.ID
	r.TableUUID = call.TableUUID
	r.TableName = call.TableName
	r.ReasonCode = call.ReasonID.Code()
	r.Reason = call.ReasonID.String()
	r.StatusCode = call.StatusID.Code()
	r.Status = call.StatusID.String()
	r.Details = call.Details
	r.CreatedAt = timezone.Format(call.CreatedAt, constant.DateFormat)
	r.AttendedAt = formatOptional(call.AttendedAt)
	r.CancelledAt = formatOptional(call.CancelledAt)
	r.AttendedBy = call.AttendedBy
}

type GetCallsResponse struct {
	Calls []CallResponse `json:"calls"`
	Total int            `json:"total"`
}

func (r *GetCallsResponse) FromModels(calls []model.ServiceCall) {
	r.Total = len(calls)
	r.Calls = make([]CallResponse, len(calls))

	for i, call := range calls {
		r.Calls[i].FromModel(call)
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
