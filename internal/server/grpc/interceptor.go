package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/blogsync/internal/common"
	pb "github.com/dmitrijs2005/blogsync/internal/proto"
	"github.com/dmitrijs2005/blogsync/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// protectedMethods need a valid access token. Other methods accept one
// optionally; when present it must still be valid.
var protectedMethods = map[string]bool{
	pb.FullMethod(pb.MethodGetUser):           true,
	pb.FullMethod(pb.MethodInsertPost):        true,
	pb.FullMethod(pb.MethodUpdatePost):        true,
	pb.FullMethod(pb.MethodDeletePost):        true,
	pb.FullMethod(pb.MethodUpsertProfile):     true,
	pb.FullMethod(pb.MethodCreateImageUpload): true,
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// identityFromContext returns the caller set by accessTokenInterceptor.
func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	accessToken := accessTokenFromContext(ctx)

	if accessToken == "" {
		if protectedMethods[info.FullMethod] {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		return handler(ctx, req)
	}

	id, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, identityKey, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown, codes.Unavailable:
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "rpc rejected", append(args, "error", err)...)
	}
	return resp, err
}
