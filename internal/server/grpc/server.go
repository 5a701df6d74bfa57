// Package grpc exposes blogd's services as blog.store.v1.StoreService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	pb "github.com/dmitrijs2005/blogsync/internal/proto"
	"github.com/dmitrijs2005/blogsync/internal/server/auth"
	sm "github.com/dmitrijs2005/blogsync/internal/server/models"
	"google.golang.org/grpc"
)

type userService interface {
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	GetUser(ctx context.Context, userID string) (*sm.User, error)
}

type contentService interface {
	ListPosts(ctx context.Context, viewerID string, q models.PostQuery) ([]*models.PostRecord, error)
	CountPosts(ctx context.Context, viewerID string, q models.PostQuery) (int, error)
	InsertPost(ctx context.Context, author auth.Identity, p *models.PostRecord) (*models.PostRecord, error)
	UpdatePost(ctx context.Context, userID, id, authorID string, patch models.PostPatch) (*models.PostRecord, error)
	DeletePost(ctx context.Context, userID, id, authorID string) error
	ListCategories(ctx context.Context) ([]*models.CategoryRecord, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, userID, id string, u models.ProfileUpdate) (*models.Profile, error)
}

type mediaService interface {
	CreateImageUpload(ctx context.Context, userID, filename, contentType string) (*models.ImageUpload, error)
}

type GRPCServer struct {
	pb.UnimplementedStoreServiceServer
	address   string
	users     userService
	content   contentService
	media     mediaService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, us userService, cs contentService, ms mediaService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		content:   cs,
		media:     ms,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the service and interceptors registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterStoreServiceServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	<-stopped
	return nil
}
