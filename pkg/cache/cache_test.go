package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/mecanix/garage-api/pkg/common"
	redisclient "github.com/mecanix/garage-api/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func newMockedManager(t *testing.T) (*Manager, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewManager(redisclient.NewFromExisting(db)), mock
}

func TestManager_SetAndGet(t *testing.T) {
	m, mock := newMockedManager(t)

	value := payload{Name: "oil change", Score: -20}
	mock.ExpectSet("dashboard:forecasts:10", `{"name":"oil change","score":-20}`, time.Minute).SetVal("OK")
	mock.ExpectGet("dashboard:forecasts:10").SetVal(`{"name":"oil change","score":-20}`)

	require.NoError(t, m.Set(context.Background(), Keys.Dashboard(10), value, time.Minute))

	var got payload
	require.NoError(t, m.Get(context.Background(), Keys.Dashboard(10), &got))
	assert.Equal(t, value, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_GetMiss(t *testing.T) {
	m, mock := newMockedManager(t)

	mock.ExpectGet("dashboard:forecasts:10").RedisNil()

	var got payload
	err := m.Get(context.Background(), Keys.Dashboard(10), &got)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_Delete(t *testing.T) {
	m, mock := newMockedManager(t)

	mock.ExpectDel("forecasts:vehicle:abc").SetVal(1)

	assert.NoError(t, m.Delete(context.Background(), Keys.VehicleForecasts("abc")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "dashboard:forecasts:25", Keys.Dashboard(25))
	assert.Equal(t, "forecasts:vehicle:xyz", Keys.VehicleForecasts("xyz"))
}
