package feedlogs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/demo"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

type countingClient struct {
	farmapi.Client
	creates int
}

func (c *countingClient) CreateFeedingLog(ctx context.Context, token string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	c.creates++
	return c.Client.CreateFeedingLog(ctx, token, in)
}

func login(t *testing.T, client farmapi.Client) string {
	t.Helper()
	res, err := client.Login(context.Background(), "wati", "barat123")
	require.NoError(t, err)
	return res.Token
}

func TestCreateRejectsEmptyFeedTimeWithoutNetworkCall(t *testing.T) {
	client := &countingClient{Client: demo.NewClient()}
	svc := NewService(client, nil)
	token := login(t, client)

	_, err := svc.Create(context.Background(), token, models.FeedingLogCreate{
		Date: "2025-03-10", FeedTime: "", Barn: models.BarnWest, Note: "hay",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, client.creates)
}

func TestCreateStampsCreator(t *testing.T) {
	client := demo.NewClient()
	svc := NewService(client, nil)
	token := login(t, client)

	log, err := svc.Create(context.Background(), token, models.FeedingLogCreate{
		Date: "2025-03-10", FeedTime: "07:15", Barn: models.BarnWest, Note: "hay",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, log.ID)
	assert.NotEmpty(t, log.UserID)
}

func TestUpdateKeepsCreator(t *testing.T) {
	client := demo.NewClient()
	svc := NewService(client, nil)
	token := login(t, client)
	ctx := context.Background()

	created, err := svc.Create(ctx, token, models.FeedingLogCreate{
		Date: "2025-03-10", FeedTime: "07:15", Barn: models.BarnWest,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, token, created.ID, models.FeedingLogCreate{
		Date: "2025-03-11", FeedTime: "08:00", Barn: models.BarnWest, Note: "extra hay",
	})
	require.NoError(t, err)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.Equal(t, "2025-03-11", updated.Date)
}

func TestMonthFilterRoundTrip(t *testing.T) {
	client := demo.NewClient()
	svc := NewService(client, nil)
	token := login(t, client)
	ctx := context.Background()

	_, err := svc.Create(ctx, token, models.FeedingLogCreate{
		Date: "2025-03-05", FeedTime: "06:45", Barn: models.BarnWest,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, token, models.FeedingLogCreate{
		Date: "2025-04-05", FeedTime: "06:45", Barn: models.BarnWest,
	})
	require.NoError(t, err)

	march, err := svc.List(ctx, token, farmapi.LogFilter{Year: 2025, Month: time.March})
	require.NoError(t, err)
	for _, log := range march {
		assert.Equal(t, "2025-03", log.Date[:7])
	}
	require.Len(t, march, 1)
}

func TestCachePatchedAcrossMutations(t *testing.T) {
	client := demo.NewClient()
	svc := NewService(client, nil)
	token := login(t, client)
	ctx := context.Background()

	filter := farmapi.LogFilter{Year: 2025, Month: time.May}
	initial, err := svc.List(ctx, token, filter)
	require.NoError(t, err)
	require.Empty(t, initial)

	created, err := svc.Create(ctx, token, models.FeedingLogCreate{
		Date: "2025-05-20", FeedTime: "17:00", Barn: models.BarnWest,
	})
	require.NoError(t, err)

	cached, err := svc.List(ctx, token, filter)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, created.ID, cached[0].ID)

	require.NoError(t, svc.Delete(ctx, token, created.ID))

	after, err := svc.List(ctx, token, filter)
	require.NoError(t, err)
	assert.Empty(t, after)
}
