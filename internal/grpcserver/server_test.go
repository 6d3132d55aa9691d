package grpcserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"slayervault/internal/catalog"
	"slayervault/internal/particles"
	"slayervault/pkg/dataset"
	"slayervault/pkg/models"
)

type staticOverrides map[string]models.Images

func (s staticOverrides) All(context.Context) (map[string]models.Images, error) {
	return s, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	repo := catalog.NewRepo(dataset.MustLoad(), staticOverrides{
		"doma": {PosterURL: "X", GalleryURLs: []string{}},
	}, nil)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryLogger(zap.NewNop())))
	RegisterCatalogServer(srv, NewServer(repo))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cc.Close() })
	return NewClient(cc)
}

func TestQuery(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Query(t.Context(), &QueryRequest{
		Faction: catalog.FactionDemons,
		Rank:    catalog.RankUpperMoons,
		Sort:    catalog.SortRank,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, len(resp.Items), resp.Total)
	assert.Equal(t, "kokushibo", resp.Items[0].Slug)
	assert.Equal(t, "doma", resp.Items[1].Slug)
	assert.Equal(t, "X", resp.Items[1].Images.PosterURL)
	assert.Equal(t, models.KindBloodDemonArt, resp.Items[1].Technique.Kind())
}

func TestGetCharacter(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.GetCharacter(t.Context(), &GetCharacterRequest{Slug: "Tanjiro-Kamado"})
	require.NoError(t, err)
	require.NotNil(t, resp.Character)
	assert.Equal(t, "Tanjiro Kamado", resp.Character.Name)

	_, err = c.GetCharacter(t.Context(), &GetCharacterRequest{Slug: "nobody"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.GetCharacter(t.Context(), &GetCharacterRequest{Slug: " "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestParticles(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Particles(t.Context(), &ParticlesRequest{Seed: "doma-ice", Count: 10, Preset: "ice"})
	require.NoError(t, err)
	ice, _ := particles.PresetFor("ice")
	assert.Equal(t, particles.GenerateWith(10, "doma-ice", ice), resp.Particles)

	_, err = c.Particles(t.Context(), &ParticlesRequest{Seed: "x", Count: 1, Preset: "glitter"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
