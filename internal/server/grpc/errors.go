package grpc

import (
	"context"

	"github.com/dmitrijs2005/jobportal/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = map[common.Kind]codes.Code{
	common.KindNotFound:           codes.NotFound,
	common.KindAccessDenied:       codes.PermissionDenied,
	common.KindUnauthorized:       codes.Unauthenticated,
	common.KindConflict:           codes.AlreadyExists,
	common.KindValidation:         codes.InvalidArgument,
	common.KindAccountNotApproved: codes.FailedPrecondition,
	common.KindUnsupported:        codes.Unimplemented,
}

// toStatus converts a service error to a gRPC status. Internal failures are
// logged and reported with a generic message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	kind := common.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
