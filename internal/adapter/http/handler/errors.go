package handler

import (
	"errors"
	"net/http"

	t "github.com/Temutjin2k/agro-insurance/internal/domain/types"
)

const internalErrorMessage = "the server encountered a problem and could not process your request"

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serviceErrorResponse replies with the status GetCode picks for err.
// Messages of unexpected errors are not sent to the client.
func serviceErrorResponse(w http.ResponseWriter, err error) {
	status := GetCode(err)
	if status == http.StatusInternalServerError {
		internalErrorResponse(w, internalErrorMessage)
		return
	}
	errorResponse(w, status, publicMessage(err))
}

// publicMessage returns the message of the domain error err wraps, without the
// operation prefixes added on the way up.
func publicMessage(err error) string {
	for _, target := range []error{
		t.ErrNoPoints,
		t.ErrClientNotFound,
		t.ErrCropNotFound,
		t.ErrPointNotFound,
		t.ErrPolicyNotFound,
		t.ErrClimateRecordNotFound,
		t.ErrDocumentTaken,
		t.ErrPolicyNumberTaken,
		t.ErrStillReferenced,
		t.ErrAlreadyExists,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// failedValidationResponse returns 422 UnprocessableEntity status.
// The request was well-formed but its content failed validation, so repeating it
// unchanged fails the same way.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, errors)
}

// badRequestResponse returns 400 BadRequest status
func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

// internalErrorResponse returns 500 InternalServerError status
func internalErrorResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusInternalServerError, message)
}
