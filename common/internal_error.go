package common

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/squareup/colstore/errors"
)

// LogInternalError logs err with a random reference and returns a StoreError that only carries the reference,
// so implementation details are not leaked to shell users.
func LogInternalError(err error) errors.StoreError {
	id, err2 := uuid.NewRandom()
	var errRef string
	if err2 != nil {
		log.Errorf("failed to generate uuid %v", err2)
		errRef = ""
	} else {
		errRef = id.String()
	}
	perr := errors.NewInternalError(errRef)
	log.Errorf("internal error occurred with reference %s\n%+v", errRef, err)
	return perr
}

// MaybeConvertError passes StoreErrors through untouched and converts anything else into an internal error.
func MaybeConvertError(err error) error {
	if err == nil {
		return nil
	}
	var serr errors.StoreError
	if errors.As(err, &serr) {
		return serr
	}
	return LogInternalError(err)
}
