// Package forms validates user-submitted post fields before persistence.
package forms

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
)

// Error codes reported per field.
const (
	ErrRequired      = "required"
	ErrInvalidChoice = "invalid_choice"
)

// FieldErrors maps a form field to its error code.
type FieldErrors map[string]string

// PostForm carries the user-submitted post fields.
// GroupId nil means "no group", which is a valid choice.
type PostForm struct {
	Text    domain.PostText `json:"text" validate:"required"`
	GroupId *domain.GroupId `json:"group_id"`
}

// GroupReader resolves a submitted group id to an existing group.
type GroupReader interface {
	GetGroupById(id domain.GroupId) (*domain.Group, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form and resolves the optional group reference.
// It never writes anything; the caller persists the returned creation data
// together with the author identity. A non-nil FieldErrors is the normal
// negative outcome, the error return is for storage failures only.
func (f *PostForm) Validate(groups GroupReader) (domain.PostCreationData, FieldErrors, error) {
	fieldErrors := FieldErrors{}

	if err := validate.Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return domain.PostCreationData{}, nil, err
		}
		for _, fe := range validationErrors {
			if fe.Field() == "Text" {
				fieldErrors["text"] = ErrRequired
			}
		}
	}

	if f.GroupId != nil {
		_, err := groups.GetGroupById(*f.GroupId)
		if err != nil {
			var statusErr *internal_errors.ErrorWithStatusCode
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
				fieldErrors["group"] = ErrInvalidChoice
			} else {
				return domain.PostCreationData{}, nil, err
			}
		}
	}

	if len(fieldErrors) > 0 {
		return domain.PostCreationData{}, fieldErrors, nil
	}

	return domain.PostCreationData{Text: f.Text, GroupId: f.GroupId}, nil, nil
}
