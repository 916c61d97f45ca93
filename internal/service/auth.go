package service

import (
	"net/http"

	"github.com/itchan-dev/yatube/shared/domain"
	internal_errors "github.com/itchan-dev/yatube/shared/errors"
	"github.com/itchan-dev/yatube/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Signup(creds domain.Credentials) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage   AuthStorage
	jwt       Jwt
	validator CredentialsValidator
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByUsername(username domain.Username) (domain.User, error)
}

type CredentialsValidator interface {
	Username(username domain.Username) error
	Password(password domain.Password) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

var errInvalidCredentials = &internal_errors.ErrorWithStatusCode{Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}

func NewAuth(storage AuthStorage, jwt Jwt, validator CredentialsValidator) AuthService {
	return &Auth{storage, jwt, validator}
}

func (a *Auth) Signup(creds domain.Credentials) (domain.UserId, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return 0, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("hashing password", "error", err)
		return 0, err
	}

	return a.storage.SaveUser(domain.User{Username: creds.Username, PassHash: string(passHash)})
}

// Login checks the credentials and returns a signed access token.
// Unknown username and wrong password are indistinguishable to the caller.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByUsername(creds.Username)
	if err != nil {
		if statusErr, ok := err.(*internal_errors.ErrorWithStatusCode); ok && statusErr.StatusCode == http.StatusNotFound {
			return "", errInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", errInvalidCredentials
	}

	return a.jwt.NewToken(user)
}
