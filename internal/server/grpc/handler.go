package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/models"
	pb "github.com/dmitrijs2005/blogsync/internal/proto"
	"github.com/dmitrijs2005/blogsync/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Internal details are not
// sent to the client.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if services.IsClientError(err) {
		s.logger.Debug(ctx, "request rejected", "error", err)
	}

	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, common.ErrEmailTaken.Error())
	case errors.Is(err, common.ErrWeakPassword), errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrAuth), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrNotFoundOrForbidden):
		return status.Error(codes.NotFound, common.ErrNotFoundOrForbidden.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, common.ErrNotFound.Error())
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func sessionResponse(sess *models.Session) *pb.SessionResponse {
	return &pb.SessionResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
		UserID:       sess.UserID,
		Email:        sess.Email,
	}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *pb.CredentialsRequest) (*pb.SessionResponse, error) {
	sess, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", sess.UserID)
	return sessionResponse(sess), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *pb.CredentialsRequest) (*pb.SessionResponse, error) {
	sess, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return sessionResponse(sess), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.Empty, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) RefreshSession(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.SessionResponse, error) {
	sess, err := s.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return sessionResponse(sess), nil
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *pb.Empty) (*pb.UserResponse, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	u, err := s.users.GetUser(ctx, id.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.UserResponse{UserID: u.ID, Email: u.Email}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.Empty) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListPosts(ctx context.Context, req *pb.PostQueryRequest) (*pb.ListPostsResponse, error) {
	id, _ := identityFromContext(ctx)
	rows, err := s.content.ListPosts(ctx, id.UserID, req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListPostsResponse{Posts: rows}, nil
}

func (s *GRPCServer) CountPosts(ctx context.Context, req *pb.PostQueryRequest) (*pb.CountPostsResponse, error) {
	id, _ := identityFromContext(ctx)
	n, err := s.content.CountPosts(ctx, id.UserID, req.Query)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.CountPostsResponse{Count: n}, nil
}

func (s *GRPCServer) InsertPost(ctx context.Context, req *pb.InsertPostRequest) (*pb.PostResponse, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if req.Post == nil {
		return nil, status.Error(codes.InvalidArgument, "post is required")
	}
	row, err := s.content.InsertPost(ctx, id, req.Post)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.PostResponse{Post: row}, nil
}

func (s *GRPCServer) UpdatePost(ctx context.Context, req *pb.UpdatePostRequest) (*pb.PostResponse, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	row, err := s.content.UpdatePost(ctx, id.UserID, req.ID, req.AuthorID, req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.PostResponse{Post: row}, nil
}

func (s *GRPCServer) DeletePost(ctx context.Context, req *pb.DeletePostRequest) (*pb.Empty, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := s.content.DeletePost(ctx, id.UserID, req.ID, req.AuthorID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.Empty{}, nil
}

func (s *GRPCServer) ListCategories(ctx context.Context, _ *pb.Empty) (*pb.ListCategoriesResponse, error) {
	rows, err := s.content.ListCategories(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ListCategoriesResponse{Categories: rows}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.ProfileResponse, error) {
	p, err := s.content.GetProfile(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ProfileResponse{Profile: p}, nil
}

func (s *GRPCServer) UpsertProfile(ctx context.Context, req *pb.UpsertProfileRequest) (*pb.ProfileResponse, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	p, err := s.content.UpsertProfile(ctx, id.UserID, req.ID, req.Update)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ProfileResponse{Profile: p}, nil
}

func (s *GRPCServer) CreateImageUpload(ctx context.Context, req *pb.CreateImageUploadRequest) (*pb.ImageUploadResponse, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	up, err := s.media.CreateImageUpload(ctx, id.UserID, req.Filename, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.ImageUploadResponse{Upload: up}, nil
}
