package dto

import "github.com/spec-kit/event-registration/internal/domain"

// FieldsResponse echoes the form values after a change event.
type FieldsResponse struct {
	Values       domain.FormValues `json:"values"`
	GuestVisible bool              `json:"guestVisible"`
}

// CheckResponse carries the errors computed on blur.
type CheckResponse struct {
	Errors       map[string]string `json:"errors"`
	GuestVisible bool              `json:"guestVisible"`
}

// SubmitResponse reports the outcome of a submit attempt.
type SubmitResponse struct {
	Submitted bool              `json:"submitted"`
	Errors    map[string]string `json:"errors"`
	Values    domain.FormValues `json:"values"`
}

// RegistrationFieldsRequest is the body of every form post, urlencoded or
// JSON. A nil field was not posted and is left untouched.
type RegistrationFieldsRequest struct {
	Name               *string `json:"name" form:"name"`
	Email              *string `json:"email" form:"email"`
	Age                *string `json:"age" form:"age"`
	AttendingWithGuest *string `json:"attendingWithGuest" form:"attendingWithGuest"`
	GuestName          *string `json:"guestName" form:"guestName"`
}

// Posted maps each field to its posted value.
func (r RegistrationFieldsRequest) Posted() map[domain.Field]*string {
	return map[domain.Field]*string{
		domain.FieldName:               r.Name,
		domain.FieldEmail:              r.Email,
		domain.FieldAge:                r.Age,
		domain.FieldAttendingWithGuest: r.AttendingWithGuest,
		domain.FieldGuestName:          r.GuestName,
	}
}
