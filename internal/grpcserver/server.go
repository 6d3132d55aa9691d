package grpcserver

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"slayervault/internal/catalog"
	"slayervault/internal/particles"
)

type Server struct {
	Catalog *catalog.Repo
}

func NewServer(repo *catalog.Repo) *Server {
	return &Server{Catalog: repo}
}

func (s *Server) Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	items := s.Catalog.List(ctx, *req)
	return &QueryResponse{Total: len(items), Items: items}, nil
}

func (s *Server) GetCharacter(ctx context.Context, req *GetCharacterRequest) (*GetCharacterResponse, error) {
	if req == nil || strings.TrimSpace(req.Slug) == "" {
		return nil, status.Error(codes.InvalidArgument, "slug required")
	}

	rec := s.Catalog.Get(ctx, req.Slug)
	if rec == nil {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &GetCharacterResponse{Character: rec}, nil
}

func (s *Server) Particles(ctx context.Context, req *ParticlesRequest) (*ParticlesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	preset, ok := particles.PresetFor(req.Preset)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "unknown preset")
	}
	count := particles.ClampCount(req.Count)
	return &ParticlesResponse{Particles: particles.GenerateWith(count, req.Seed, preset)}, nil
}

// UnaryLogger logs every call with its status code.
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("rpc",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("latency", time.Since(start)))
		return resp, err
	}
}
