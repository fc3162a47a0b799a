package mongox

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/callkeeper/internal/common"
	"go.mongodb.org/mongo-driver/mongo"
)

// IsClientClosed reports whether err means the client was explicitly
// disconnected, as opposed to a network fault.
func IsClientClosed(err error) bool {
	return errors.Is(err, mongo.ErrClientDisconnected)
}

// WrapError translates driver errors into the shared sentinel taxonomy so
// callers can match with errors.Is without importing the driver.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", common.ErrConflict, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrNotFound
	case errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %s", common.ErrClientClosed, err)
	case mongo.IsTimeout(err) || mongo.IsNetworkError(err):
		return fmt.Errorf("%w: %s", common.ErrConnectivity, err)
	}

	return err
}
