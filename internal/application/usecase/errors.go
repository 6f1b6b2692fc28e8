package usecase

import (
	"errors"

	"lmsplatform/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
