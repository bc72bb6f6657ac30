package domain

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidUsername = errors.New("username contains disallowed characters")
var ErrWrongPassword = errors.New("wrong password")
var ErrInvalidCredentials = errors.New("invalid credentials")
