package errors

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("duplicate")
	ErrInvalidAsset     = errors.New("invalid asset")
	ErrAssetResolution  = errors.New("asset resolution error")
	ErrInvalidTopic     = errors.New("invalid topic")
	ErrInvalid          = errors.New("invalid")
	ErrStorage          = errors.New("storage error")
	ErrEventStore       = errors.New("event store error")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidRequest   = errors.New("invalid request")
)
