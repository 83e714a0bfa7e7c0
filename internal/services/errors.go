package services

import (
	"errors"
	"fmt"

	chatboard_errors "chatboard/pkg/errors"
)

// notFound attaches msg to a not-found error and passes any other error through.
func notFound(err error, msg string) error {
	if errors.Is(err, chatboard_errors.ErrNotFound) {
		return fmt.Errorf("%w: %s", chatboard_errors.ErrNotFound, msg)
	}
	return err
}
