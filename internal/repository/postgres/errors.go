package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"

	"eventagenda/internal/domain"
)

// transientCodes are SQLSTATEs worth retrying: serialization failures,
// deadlocks, admin shutdown and connection exhaustion. Class 08 is matched by prefix.
var transientCodes = map[pq.ErrorCode]struct{}{
	"40001": {},
	"40P01": {},
	"57P01": {},
	"53300": {},
}

// codeInvalidText is raised when an id parameter is not a valid UUID. No row
// can carry such an id, so it is reported as domain.ErrNotFound.
const codeInvalidText pq.ErrorCode = "22P02"

// classify wraps connection-level and contention failures as domain.TransientError
// and maps malformed ids to domain.ErrNotFound.
// Other errors, including sql.ErrNoRows, pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == codeInvalidText {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pqErr.Message)
		}
		if _, ok := transientCodes[pqErr.Code]; ok || strings.HasPrefix(string(pqErr.Code), "08") {
			return &domain.TransientError{Err: err}
		}
		return err
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return &domain.TransientError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.TransientError{Err: err}
	}
	return err
}
