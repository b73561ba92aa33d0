package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Identity errors
var (
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrPassportTaken       = errors.New("passport number already registered")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidIdentityData = errors.New("invalid identity data")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Traveller roster errors
var (
	ErrTravellerNotFound   = errors.New("traveller not found")
	ErrTravellerLinkExists = errors.New("traveller already in roster")
)

// Vehicle errors
var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrInvalidVehicleNumber = errors.New("invalid vehicle number")
	ErrInvalidVehicleLabel  = errors.New("invalid vehicle label")
)

// Preset errors
var (
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("invalid preset name")
)

// Pass errors
var (
	ErrPassNotFound        = errors.New("pass not found")
	ErrInvalidPassData     = errors.New("invalid pass data")
	ErrInvalidPassDate     = errors.New("invalid pass date")
	ErrPassAlreadyUtilized = errors.New("pass already utilized")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
