package utils

import (
	"regexp"
	"unicode/utf8"

	"github.com/itchan-dev/yatube/shared/errors"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9_-]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

type GroupDataValidator struct{}

func (v *GroupDataValidator) Title(title string) error {
	if len(title) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(title) > 200 {
		return &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: 400}
	}
	return nil
}

func (v *GroupDataValidator) Slug(slug string) error {
	if len(slug) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Slug is required", StatusCode: 400}
	}
	if utf8.RuneCountInString(slug) > 50 {
		return &errors.ErrorWithStatusCode{Message: "Slug is too long", StatusCode: 400}
	}
	if !slugPattern.MatchString(slug) {
		return &errors.ErrorWithStatusCode{Message: "Slug should contain only lowercase letters, digits, '-' and '_'", StatusCode: 400}
	}
	return nil
}

func (v *GroupDataValidator) Description(description string) error {
	if len(description) == 0 {
		return &errors.ErrorWithStatusCode{Message: "Description is required", StatusCode: 400}
	}
	return nil
}

type CredentialsValidator struct{}

func (v *CredentialsValidator) Username(username string) error {
	if utf8.RuneCountInString(username) < 3 || utf8.RuneCountInString(username) > 30 {
		return &errors.ErrorWithStatusCode{Message: "Username should be 3-30 characters long", StatusCode: 400}
	}
	if !usernamePattern.MatchString(username) {
		return &errors.ErrorWithStatusCode{Message: "Username should contain only letters, digits and '_'", StatusCode: 400}
	}
	return nil
}

func (v *CredentialsValidator) Password(password string) error {
	if len(password) < 8 {
		return &errors.ErrorWithStatusCode{Message: "Password should be at least 8 characters long", StatusCode: 400}
	}
	return nil
}
