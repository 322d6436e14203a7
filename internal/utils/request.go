package utils

import (
	"net/http"

	appErrors "github.com/marketbase/catalog-api/internal/errors"
	"github.com/marketbase/catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ParseID reads a UUID path value from the request.
func ParseID(r *http.Request, key string) (uuid.UUID, error) {

	id, err := uuid.Parse(r.PathValue(key))
	if err != nil {
		return uuid.Nil, appErrors.BadRequestError("Invalid ID format").WithError(err)
	}

	return id, nil
}

// ParseAndValidate decodes the JSON body into dest and runs struct
// validation, writing the 400 response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		response.Error(w, appErrors.ValidationError("Validation failed").WithDetail(err.Error()))
		return false
	}

	return true

}
