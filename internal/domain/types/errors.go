package types

import "errors"

var (
	ErrNotFound              = errors.New("requested item not found")
	ErrClientNotFound        = errors.New("client not found")
	ErrCropNotFound          = errors.New("crop not found")
	ErrPointNotFound         = errors.New("point not found")
	ErrPolicyNotFound        = errors.New("policy not found")
	ErrClimateRecordNotFound = errors.New("climate record not found")

	ErrNoPoints = errors.New("no points available")

	ErrAlreadyExists     = errors.New("record already exists")
	ErrDocumentTaken     = errors.New("client with this document id already exists")
	ErrPolicyNumberTaken = errors.New("policy number already exists")
	ErrInvalidReference  = errors.New("referenced record does not exist")
	ErrStillReferenced   = errors.New("record is referenced by other records")
	ErrInvalidValue      = errors.New("value has invalid format")
)
