package store

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError turns a gRPC status into the common error family.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	msg := st.Message()

	switch st.Code() {
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrEmailTaken)
	case codes.InvalidArgument:
		if strings.Contains(msg, common.ErrWeakPassword.Error()) {
			return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrWeakPassword)
		}
		return fmt.Errorf("%w: %s", common.ErrValidation, strings.TrimPrefix(msg, common.ErrValidation.Error()+": "))
	case codes.Unauthenticated:
		switch msg {
		case common.ErrTokenExpired.Error():
			return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrTokenExpired)
		case common.ErrRefreshTokenExpired.Error():
			return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrRefreshTokenExpired)
		case common.ErrInvalidToken.Error():
			return fmt.Errorf("%w: %w", common.ErrAuth, common.ErrInvalidToken)
		}
		if msg == common.ErrAuth.Error() {
			return common.ErrAuth
		}
		return fmt.Errorf("%w: %s", common.ErrAuth, strings.TrimPrefix(msg, common.ErrAuth.Error()+": "))
	case codes.NotFound:
		if msg == common.ErrNotFoundOrForbidden.Error() {
			return common.ErrNotFoundOrForbidden
		}
		return common.ErrNotFound
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrForbidden, msg)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// isTokenExpired reports whether the server rejected an expired access token.
func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}
