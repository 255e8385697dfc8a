package domain

import "errors"

var (
	ErrInvalidID             = errors.New("invalid id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidTitle          = errors.New("invalid title")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidColor          = errors.New("invalid color")
	ErrInvalidCurrency       = errors.New("invalid currency")
	ErrInvalidColumnKey      = errors.New("invalid column key")
	ErrInvalidFieldType      = errors.New("invalid custom field type")
	ErrInvalidFieldValue     = errors.New("invalid custom field value")
	ErrDuplicateCustomField  = errors.New("duplicate custom field value")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidReminderMoment = errors.New("invalid reminder alert time")
)
