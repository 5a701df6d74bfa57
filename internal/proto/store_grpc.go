package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "blog.store.v1.StoreService"

// Method names.
const (
	MethodSignUp            = "SignUp"
	MethodSignIn            = "SignIn"
	MethodSignOut           = "SignOut"
	MethodRefreshSession    = "RefreshSession"
	MethodGetUser           = "GetUser"
	MethodPing              = "Ping"
	MethodListPosts         = "ListPosts"
	MethodCountPosts        = "CountPosts"
	MethodInsertPost        = "InsertPost"
	MethodUpdatePost        = "UpdatePost"
	MethodDeletePost        = "DeletePost"
	MethodListCategories    = "ListCategories"
	MethodGetProfile        = "GetProfile"
	MethodUpsertProfile     = "UpsertProfile"
	MethodCreateImageUpload = "CreateImageUpload"
)

// FullMethod returns the gRPC path of method, e.g. "/blog.store.v1.StoreService/Ping".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// StoreServiceClient is the client API for StoreService.
type StoreServiceClient interface {
	SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignOut(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Empty, error)
	RefreshSession(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	GetUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error)
	Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error)
	ListPosts(ctx context.Context, in *PostQueryRequest, opts ...grpc.CallOption) (*ListPostsResponse, error)
	CountPosts(ctx context.Context, in *PostQueryRequest, opts ...grpc.CallOption) (*CountPostsResponse, error)
	InsertPost(ctx context.Context, in *InsertPostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error)
	DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*Empty, error)
	ListCategories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	CreateImageUpload(ctx context.Context, in *CreateImageUploadRequest, opts ...grpc.CallOption) (*ImageUploadResponse, error)
}

type storeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStoreServiceClient(cc grpc.ClientConnInterface) StoreServiceClient {
	return &storeServiceClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	req, err := Pack(in)
	if err != nil {
		return nil, err
	}
	reply := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(method), req, reply, opts...); err != nil {
		return nil, err
	}
	out := new(Resp)
	if err := Unpack(reply, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storeServiceClient) SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[CredentialsRequest, SessionResponse](ctx, c.cc, MethodSignUp, in, opts...)
}

func (c *storeServiceClient) SignIn(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[CredentialsRequest, SessionResponse](ctx, c.cc, MethodSignIn, in, opts...)
}

func (c *storeServiceClient) SignOut(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[RefreshTokenRequest, Empty](ctx, c.cc, MethodSignOut, in, opts...)
}

func (c *storeServiceClient) RefreshSession(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[RefreshTokenRequest, SessionResponse](ctx, c.cc, MethodRefreshSession, in, opts...)
}

func (c *storeServiceClient) GetUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[Empty, UserResponse](ctx, c.cc, MethodGetUser, in, opts...)
}

func (c *storeServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[Empty, PingResponse](ctx, c.cc, MethodPing, in, opts...)
}

func (c *storeServiceClient) ListPosts(ctx context.Context, in *PostQueryRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[PostQueryRequest, ListPostsResponse](ctx, c.cc, MethodListPosts, in, opts...)
}

func (c *storeServiceClient) CountPosts(ctx context.Context, in *PostQueryRequest, opts ...grpc.CallOption) (*CountPostsResponse, error) {
	return invoke[PostQueryRequest, CountPostsResponse](ctx, c.cc, MethodCountPosts, in, opts...)
}

func (c *storeServiceClient) InsertPost(ctx context.Context, in *InsertPostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[InsertPostRequest, PostResponse](ctx, c.cc, MethodInsertPost, in, opts...)
}

func (c *storeServiceClient) UpdatePost(ctx context.Context, in *UpdatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[UpdatePostRequest, PostResponse](ctx, c.cc, MethodUpdatePost, in, opts...)
}

func (c *storeServiceClient) DeletePost(ctx context.Context, in *DeletePostRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[DeletePostRequest, Empty](ctx, c.cc, MethodDeletePost, in, opts...)
}

func (c *storeServiceClient) ListCategories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[Empty, ListCategoriesResponse](ctx, c.cc, MethodListCategories, in, opts...)
}

func (c *storeServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[GetProfileRequest, ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts...)
}

func (c *storeServiceClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[UpsertProfileRequest, ProfileResponse](ctx, c.cc, MethodUpsertProfile, in, opts...)
}

func (c *storeServiceClient) CreateImageUpload(ctx context.Context, in *CreateImageUploadRequest, opts ...grpc.CallOption) (*ImageUploadResponse, error) {
	return invoke[CreateImageUploadRequest, ImageUploadResponse](ctx, c.cc, MethodCreateImageUpload, in, opts...)
}

// StoreServiceServer is the server API for StoreService.
type StoreServiceServer interface {
	SignUp(context.Context, *CredentialsRequest) (*SessionResponse, error)
	SignIn(context.Context, *CredentialsRequest) (*SessionResponse, error)
	SignOut(context.Context, *RefreshTokenRequest) (*Empty, error)
	RefreshSession(context.Context, *RefreshTokenRequest) (*SessionResponse, error)
	GetUser(context.Context, *Empty) (*UserResponse, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
	ListPosts(context.Context, *PostQueryRequest) (*ListPostsResponse, error)
	CountPosts(context.Context, *PostQueryRequest) (*CountPostsResponse, error)
	InsertPost(context.Context, *InsertPostRequest) (*PostResponse, error)
	UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error)
	DeletePost(context.Context, *DeletePostRequest) (*Empty, error)
	ListCategories(context.Context, *Empty) (*ListCategoriesResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	UpsertProfile(context.Context, *UpsertProfileRequest) (*ProfileResponse, error)
	CreateImageUpload(context.Context, *CreateImageUploadRequest) (*ImageUploadResponse, error)
	mustEmbedUnimplementedStoreServiceServer()
}

// UnimplementedStoreServiceServer must be embedded by implementations.
type UnimplementedStoreServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedStoreServiceServer) SignUp(context.Context, *CredentialsRequest) (*SessionResponse, error) {
	return nil, unimplemented(MethodSignUp)
}
func (UnimplementedStoreServiceServer) SignIn(context.Context, *CredentialsRequest) (*SessionResponse, error) {
	return nil, unimplemented(MethodSignIn)
}
func (UnimplementedStoreServiceServer) SignOut(context.Context, *RefreshTokenRequest) (*Empty, error) {
	return nil, unimplemented(MethodSignOut)
}
func (UnimplementedStoreServiceServer) RefreshSession(context.Context, *RefreshTokenRequest) (*SessionResponse, error) {
	return nil, unimplemented(MethodRefreshSession)
}
func (UnimplementedStoreServiceServer) GetUser(context.Context, *Empty) (*UserResponse, error) {
	return nil, unimplemented(MethodGetUser)
}
func (UnimplementedStoreServiceServer) Ping(context.Context, *Empty) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedStoreServiceServer) ListPosts(context.Context, *PostQueryRequest) (*ListPostsResponse, error) {
	return nil, unimplemented(MethodListPosts)
}
func (UnimplementedStoreServiceServer) CountPosts(context.Context, *PostQueryRequest) (*CountPostsResponse, error) {
	return nil, unimplemented(MethodCountPosts)
}
func (UnimplementedStoreServiceServer) InsertPost(context.Context, *InsertPostRequest) (*PostResponse, error) {
	return nil, unimplemented(MethodInsertPost)
}
func (UnimplementedStoreServiceServer) UpdatePost(context.Context, *UpdatePostRequest) (*PostResponse, error) {
	return nil, unimplemented(MethodUpdatePost)
}
func (UnimplementedStoreServiceServer) DeletePost(context.Context, *DeletePostRequest) (*Empty, error) {
	return nil, unimplemented(MethodDeletePost)
}
func (UnimplementedStoreServiceServer) ListCategories(context.Context, *Empty) (*ListCategoriesResponse, error) {
	return nil, unimplemented(MethodListCategories)
}
func (UnimplementedStoreServiceServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodGetProfile)
}
func (UnimplementedStoreServiceServer) UpsertProfile(context.Context, *UpsertProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodUpsertProfile)
}
func (UnimplementedStoreServiceServer) CreateImageUpload(context.Context, *CreateImageUploadRequest) (*ImageUploadResponse, error) {
	return nil, unimplemented(MethodCreateImageUpload)
}
func (UnimplementedStoreServiceServer) mustEmbedUnimplementedStoreServiceServer() {}

// unaryHandler adapts a typed server method to a grpc.MethodHandler. Interceptors
// see the typed request and response; packing happens after the chain returns.
func unaryHandler[Req, Resp any](method string, call func(StoreServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			doc := new(structpb.Struct)
			if err := dec(doc); err != nil {
				return nil, err
			}
			in := new(Req)
			if err := Unpack(doc, in); err != nil {
				return nil, status.Error(codes.InvalidArgument, err.Error())
			}

			typed := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StoreServiceServer), ctx, req.(*Req))
			}

			var (
				out any
				err error
			)
			if interceptor == nil {
				out, err = typed(ctx, in)
			} else {
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
				out, err = interceptor(ctx, in, info, typed)
			}
			if err != nil {
				return nil, err
			}

			reply, err := Pack(out)
			if err != nil {
				return nil, status.Error(codes.Internal, err.Error())
			}
			return reply, nil
		},
	}
}

// StoreService_ServiceDesc is the grpc.ServiceDesc for StoreService.
var StoreService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StoreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodSignUp, StoreServiceServer.SignUp),
		unaryHandler(MethodSignIn, StoreServiceServer.SignIn),
		unaryHandler(MethodSignOut, StoreServiceServer.SignOut),
		unaryHandler(MethodRefreshSession, StoreServiceServer.RefreshSession),
		unaryHandler(MethodGetUser, StoreServiceServer.GetUser),
		unaryHandler(MethodPing, StoreServiceServer.Ping),
		unaryHandler(MethodListPosts, StoreServiceServer.ListPosts),
		unaryHandler(MethodCountPosts, StoreServiceServer.CountPosts),
		unaryHandler(MethodInsertPost, StoreServiceServer.InsertPost),
		unaryHandler(MethodUpdatePost, StoreServiceServer.UpdatePost),
		unaryHandler(MethodDeletePost, StoreServiceServer.DeletePost),
		unaryHandler(MethodListCategories, StoreServiceServer.ListCategories),
		unaryHandler(MethodGetProfile, StoreServiceServer.GetProfile),
		unaryHandler(MethodUpsertProfile, StoreServiceServer.UpsertProfile),
		unaryHandler(MethodCreateImageUpload, StoreServiceServer.CreateImageUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blog/store/v1/store.proto",
}

func RegisterStoreServiceServer(s grpc.ServiceRegistrar, srv StoreServiceServer) {
	s.RegisterService(&StoreService_ServiceDesc, srv)
}
