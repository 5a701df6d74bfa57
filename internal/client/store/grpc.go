package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	metarepo "github.com/dmitrijs2005/blogsync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogsync/internal/client/session"
	"github.com/dmitrijs2005/blogsync/internal/common"
	"github.com/dmitrijs2005/blogsync/internal/logging"
	"github.com/dmitrijs2005/blogsync/internal/models"
	pb "github.com/dmitrijs2005/blogsync/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// sessionKey is the metadata row holding the persisted session.
const sessionKey = "session"

// tokenlessMethods never carry the access token. An expired token would
// otherwise be rejected before the call could replace it.
var tokenlessMethods = map[string]bool{
	pb.FullMethod(pb.MethodSignUp):         true,
	pb.FullMethod(pb.MethodSignIn):         true,
	pb.FullMethod(pb.MethodSignOut):        true,
	pb.FullMethod(pb.MethodRefreshSession): true,
	pb.FullMethod(pb.MethodPing):           true,
}

// GRPCStore is a Client backed by blogd. The session survives restarts in
// the local metadata table.
type GRPCStore struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.StoreServiceClient
	meta        metarepo.Repository
	hub         *session.Hub
	logger      logging.Logger

	mu       sync.Mutex
	session  *models.Session
	restored bool

	// refreshMu serializes token refreshes.
	refreshMu sync.Mutex
}

var _ Client = (*GRPCStore)(nil)

// NewGRPCStore connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCStore(endpointURL string, meta metarepo.Repository, l logging.Logger, opts ...grpc.DialOption) (*GRPCStore, error) {
	s := &GRPCStore{
		endpointURL: endpointURL,
		meta:        meta,
		hub:         session.NewHub(),
		logger:      l.With("module", "grpc_store"),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	s.client = pb.NewStoreServiceClient(conn)
	return s, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCStore) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if tokenlessMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	sess := s.current()
	if sess == nil {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, sess.AccessToken), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || sess.RefreshToken == "" {
		return err
	}

	fresh, rerr := s.refresh(ctx, sess)
	if rerr != nil {
		return rerr
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

// refresh exchanges the refresh token of stale for a new session. When
// another call already refreshed it, the newer session is returned as is.
func (s *GRPCStore) refresh(ctx context.Context, stale *models.Session) (*models.Session, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if cur := s.current(); cur != nil && cur.AccessToken != stale.AccessToken {
		return cur, nil
	}

	resp, err := s.client.RefreshSession(ctx, &pb.RefreshTokenRequest{RefreshToken: stale.RefreshToken})
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, common.ErrAuth) {
			s.logger.Info(ctx, "Session expired, signing out", "error", mapped)
			s.setSession(ctx, nil, session.KindSignedOut)
		}
		return nil, mapped
	}

	fresh := toSession(resp)
	s.setSession(ctx, fresh, session.KindRefreshed)
	return fresh, nil
}

func toSession(r *pb.SessionResponse) *models.Session {
	return &models.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
		UserID:       r.UserID,
		Email:        r.Email,
	}
}

func (s *GRPCStore) current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// setSession replaces the session, persists it and notifies subscribers.
// Persistence failures only affect the next start, so they are logged.
func (s *GRPCStore) setSession(ctx context.Context, sess *models.Session, kind session.Kind) {
	s.mu.Lock()
	s.session = sess
	s.restored = true
	s.mu.Unlock()

	var err error
	if sess == nil {
		err = s.meta.Delete(ctx, sessionKey)
	} else {
		err = metarepo.SaveJSON(ctx, s.meta, sessionKey, sess)
	}
	if err != nil {
		s.logger.Warn(ctx, "Failed to persist session", "error", err)
	}

	s.hub.Publish(session.Event{Kind: kind, Session: sess})
}

func (s *GRPCStore) Subscribe() *session.Subscription {
	return s.hub.Subscribe()
}

// CurrentSession restores the persisted session on first use and announces
// it as the initial session.
func (s *GRPCStore) CurrentSession(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.restored {
		return s.session, nil
	}

	var sess models.Session
	ok, err := metarepo.LoadJSON(ctx, s.meta, sessionKey, &sess)
	if err != nil {
		return nil, err
	}
	s.restored = true
	if ok {
		s.session = &sess
	}
	s.hub.Publish(session.Event{Kind: session.KindInitial, Session: s.session})
	return s.session, nil
}

func (s *GRPCStore) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.SignUp(ctx, &pb.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	sess := toSession(resp)
	s.setSession(ctx, sess, session.KindSignedIn)
	return sess, nil
}

func (s *GRPCStore) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := s.client.SignIn(ctx, &pb.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	sess := toSession(resp)
	s.setSession(ctx, sess, session.KindSignedIn)
	return sess, nil
}

// SignOut revokes the refresh token with blogd, then forgets the session.
func (s *GRPCStore) SignOut(ctx context.Context) error {
	sess, err := s.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if sess != nil {
		if _, err := s.client.SignOut(ctx, &pb.RefreshTokenRequest{RefreshToken: sess.RefreshToken}); err != nil {
			return mapError(err)
		}
	}
	s.setSession(ctx, nil, session.KindSignedOut)
	return nil
}

func (s *GRPCStore) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.Empty{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return common.ErrUnavailable
	}
	return nil
}

func (s *GRPCStore) ListPosts(ctx context.Context, q models.PostQuery) ([]*models.PostRecord, error) {
	resp, err := s.client.ListPosts(ctx, &pb.PostQueryRequest{Query: q})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Posts, nil
}

func (s *GRPCStore) CountPosts(ctx context.Context, q models.PostQuery) (int, error) {
	resp, err := s.client.CountPosts(ctx, &pb.PostQueryRequest{Query: q})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Count, nil
}

func (s *GRPCStore) InsertPost(ctx context.Context, p *models.PostRecord) (*models.PostRecord, error) {
	resp, err := s.client.InsertPost(ctx, &pb.InsertPostRequest{Post: p})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Post, nil
}

func (s *GRPCStore) UpdatePost(ctx context.Context, id, authorID string, patch models.PostPatch) (*models.PostRecord, error) {
	resp, err := s.client.UpdatePost(ctx, &pb.UpdatePostRequest{ID: id, AuthorID: authorID, Patch: patch})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Post, nil
}

func (s *GRPCStore) DeletePost(ctx context.Context, id, authorID string) error {
	if _, err := s.client.DeletePost(ctx, &pb.DeletePostRequest{ID: id, AuthorID: authorID}); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *GRPCStore) ListCategories(ctx context.Context) ([]*models.CategoryRecord, error) {
	resp, err := s.client.ListCategories(ctx, &pb.Empty{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Categories, nil
}

func (s *GRPCStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &pb.GetProfileRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCStore) UpsertProfile(ctx context.Context, id string, u models.ProfileUpdate) (*models.Profile, error) {
	resp, err := s.client.UpsertProfile(ctx, &pb.UpsertProfileRequest{ID: id, Update: u})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCStore) CreateImageUpload(ctx context.Context, filename, contentType string) (*models.ImageUpload, error) {
	resp, err := s.client.CreateImageUpload(ctx, &pb.CreateImageUploadRequest{Filename: filename, ContentType: contentType})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Upload, nil
}

// Close stops event delivery and closes the connection.
func (s *GRPCStore) Close() error {
	s.hub.Close()
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("closing connection to %s: %w", s.endpointURL, err)
	}
	return nil
}
