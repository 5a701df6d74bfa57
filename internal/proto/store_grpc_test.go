package proto

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/blogsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeServer struct {
	UnimplementedStoreServiceServer
	lastUpdate *UpdatePostRequest
}

func (f *fakeServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func (f *fakeServer) UpdatePost(_ context.Context, in *UpdatePostRequest) (*PostResponse, error) {
	f.lastUpdate = in
	if in.AuthorID != "u1" {
		return nil, status.Error(codes.NotFound, "no rows")
	}
	return &PostResponse{Post: &models.PostRecord{ID: in.ID, AuthorID: in.AuthorID, Published: *in.Patch.Published}}, nil
}

func dial(t *testing.T, srv StoreServiceServer, opts ...grpc.ServerOption) StoreServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterStoreServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewStoreServiceClient(conn)
}

func TestStoreService_RoundTrip(t *testing.T) {
	fs := &fakeServer{}
	c := dial(t, fs)
	ctx := context.Background()

	pong, err := c.Ping(ctx, &Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	resp, err := c.UpdatePost(ctx, &UpdatePostRequest{ID: "p1", AuthorID: "u1", Patch: models.PostPatch{Published: models.Bool(true)}})
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.Post.ID)
	assert.True(t, resp.Post.Published)
	require.NotNil(t, fs.lastUpdate)
	assert.Nil(t, fs.lastUpdate.Patch.Title)

	_, err = c.UpdatePost(ctx, &UpdatePostRequest{ID: "p1", AuthorID: "u2", Patch: models.PostPatch{Published: models.Bool(true)}})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestStoreService_Unimplemented(t *testing.T) {
	c := dial(t, &fakeServer{})

	_, err := c.ListCategories(context.Background(), &Empty{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestStoreService_InterceptorSeesTypedMessages(t *testing.T) {
	var gotMethod string
	var gotReq, gotResp any
	ic := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		gotMethod = info.FullMethod
		gotReq = req
		resp, err := handler(ctx, req)
		gotResp = resp
		return resp, err
	}

	c := dial(t, &fakeServer{}, grpc.ChainUnaryInterceptor(ic))
	_, err := c.Ping(context.Background(), &Empty{})
	require.NoError(t, err)

	assert.Equal(t, "/blog.store.v1.StoreService/Ping", gotMethod)
	assert.IsType(t, &Empty{}, gotReq)
	assert.IsType(t, &PingResponse{}, gotResp)
}
