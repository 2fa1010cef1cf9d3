package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes caps request bodies; a full agenda import fits well below it.
const MaxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that check their own fields.
// Validate returns one message per problem; nil means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads a single JSON document into dest, rejecting unknown
// fields and trailing data, then runs Validate when dest implements Validator.
// It writes the 400 response itself and returns false on failure.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, decodeMessage(err))
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body must contain a single JSON object")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeValidation, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

func decodeMessage(err error) string {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &tooLarge):
		return "request body too large"
	default:
		return err.Error()
	}
}
