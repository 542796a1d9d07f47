package helpers

import (
	"strconv"

	"github.com/yigit/studyshare/internal/pkg/apperrors"
)

// ParseID parses a positive decimal entity id. Signs, spaces and trailing
// garbage are rejected.
func ParseID(raw string) (int64, error) {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, apperrors.ErrInvalidID
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidID
	}
	return id, nil
}
