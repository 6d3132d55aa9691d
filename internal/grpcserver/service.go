package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"slayervault/internal/catalog"
	"slayervault/internal/particles"
	"slayervault/pkg/models"
)

const ServiceName = "slayervault.catalog.v1.Catalog"

const (
	methodQuery        = "/" + ServiceName + "/Query"
	methodGetCharacter = "/" + ServiceName + "/GetCharacter"
	methodParticles    = "/" + ServiceName + "/Particles"
)

type QueryRequest = catalog.QuerySpec

type QueryResponse struct {
	Total int                `json:"total"`
	Items []models.Character `json:"items"`
}

type GetCharacterRequest struct {
	Slug string `json:"slug"`
}

type GetCharacterResponse struct {
	Character *models.Character `json:"character"`
}

type ParticlesRequest struct {
	Seed   string `json:"seed"`
	Count  int    `json:"count"`
	Preset string `json:"preset"`
}

type ParticlesResponse struct {
	Particles []particles.Particle `json:"particles"`
}

type CatalogServer interface {
	Query(context.Context, *QueryRequest) (*QueryResponse, error)
	GetCharacter(context.Context, *GetCharacterRequest) (*GetCharacterResponse, error)
	Particles(context.Context, *ParticlesRequest) (*ParticlesResponse, error)
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Query", Handler: queryHandler},
		{MethodName: "GetCharacter", Handler: getCharacterHandler},
		{MethodName: "Particles", Handler: particlesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "slayervault/catalog.v1",
}

func queryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(QueryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Query(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodQuery}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).Query(ctx, req.(*QueryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getCharacterHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetCharacterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetCharacter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetCharacter}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetCharacter(ctx, req.(*GetCharacterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func particlesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ParticlesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Particles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodParticles}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).Particles(ctx, req.(*ParticlesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is the typed client for CatalogServer.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Query(ctx context.Context, in *QueryRequest, opts ...grpc.CallOption) (*QueryResponse, error) {
	out := new(QueryResponse)
	if err := c.cc.Invoke(ctx, methodQuery, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCharacter(ctx context.Context, in *GetCharacterRequest, opts ...grpc.CallOption) (*GetCharacterResponse, error) {
	out := new(GetCharacterResponse)
	if err := c.cc.Invoke(ctx, methodGetCharacter, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Particles(ctx context.Context, in *ParticlesRequest, opts ...grpc.CallOption) (*ParticlesResponse, error) {
	out := new(ParticlesResponse)
	if err := c.cc.Invoke(ctx, methodParticles, in, out, c.callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
