package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/srgjo27/flight_booking/internal/core/domain"
	"github.com/srgjo27/flight_booking/internal/core/ports"
	"github.com/srgjo27/flight_booking/internal/core/ports/mocks"
	"github.com/srgjo27/flight_booking/internal/core/services"
)

var catalog = []domain.Destination{
	{ID: 1, City: "Paris", Country: "France", Region: "Europe", Price: 450, Popularity: 90},
	{ID: 2, City: "Tokyo", Country: "Japan", Region: "Asia", Price: 900, Popularity: 95},
	{ID: 3, City: "Lisbon", Country: "Portugal", Region: "Europe", Price: 300, Popularity: 70},
	{ID: 4, City: "bangkok", Country: "Thailand", Region: "Asia", Price: 650, Popularity: 70},
}

func newDestinationStore(t *testing.T, favorites *mocks.FavoriteRepository) (*services.DestinationStore, *mocks.DestinationAPI) {
	api := mocks.NewDestinationAPI(t)
	var repo ports.FavoriteRepository
	if favorites != nil {
		repo = favorites
	}
	return services.NewDestinationStore(api, repo, "device-1", services.NewEventBus("s-1"), zap.NewNop()), api
}

func loadedDestinationStore(t *testing.T) (*services.DestinationStore, *mocks.DestinationAPI) {
	store, api := newDestinationStore(t, nil)
	ctx := context.Background()
	api.On("GetAllDestinations", ctx).Return(append([]domain.Destination(nil), catalog...), nil).Once()
	require.True(t, store.LoadDestinations(ctx))
	return store, api
}

func cities(ds []*domain.Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.City
	}
	return out
}

func TestDestinationStore_Defaults(t *testing.T) {
	store, _ := newDestinationStore(t, nil)

	query, region, sortOption := store.Filters()
	assert.Empty(t, query)
	assert.Equal(t, services.AllRegions, region)
	assert.Equal(t, services.SortByPopularity, sortOption)
	assert.Empty(t, store.FavoriteIDs())
}

func TestDestinationStore_LoadDestinations_Failure(t *testing.T) {
	store, api := newDestinationStore(t, nil)
	ctx := context.Background()

	api.On("GetAllDestinations", ctx).Return(nil, errors.New(""))

	assert.False(t, store.LoadDestinations(ctx))
	assert.Equal(t, "Failed to load destinations", store.Error())
	assert.False(t, store.IsLoading())
}

func TestDestinationStore_GetDestinationByID_CacheHit(t *testing.T) {
	store, _ := loadedDestinationStore(t)
	ctx := context.Background()

	first := store.GetDestinationByID(ctx, 2)
	second := store.GetDestinationByID(ctx, 2)

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Same(t, first, store.CurrentDestination())
	assert.Equal(t, "Tokyo", first.City)
}

func TestDestinationStore_GetDestinationByID_FetchIsNotCached(t *testing.T) {
	store, api := loadedDestinationStore(t)
	ctx := context.Background()
	remote := &domain.Destination{ID: 99, City: "Reykjavik"}

	api.On("GetDestinationByID", ctx, int64(99)).Return(remote, nil).Twice()

	assert.Equal(t, remote, store.GetDestinationByID(ctx, 99))
	assert.Equal(t, remote, store.GetDestinationByID(ctx, 99))
	assert.Len(t, store.Destinations(), len(catalog))
}

func TestDestinationStore_GetDestinationByID_Failure(t *testing.T) {
	store, api := newDestinationStore(t, nil)
	ctx := context.Background()

	api.On("GetDestinationByID", ctx, int64(5)).Return(nil, errors.New("Destination not found"))

	assert.Nil(t, store.GetDestinationByID(ctx, 5))
	assert.Equal(t, "Destination not found", store.Error())
	assert.Nil(t, store.CurrentDestination())
}

func TestDestinationStore_ToggleFavorite_Persists(t *testing.T) {
	favorites := mocks.NewFavoriteRepository(t)
	store, _ := newDestinationStore(t, favorites)
	ctx := context.Background()

	favorites.On("SaveFavorites", ctx, "device-1", []int64{3}).Return(nil).Once()
	favorites.On("SaveFavorites", ctx, "device-1", []int64{3, 1}).Return(nil).Once()
	favorites.On("SaveFavorites", ctx, "device-1", []int64{1}).Return(nil).Once()

	assert.True(t, store.ToggleFavoriteDestination(ctx, 3))
	assert.True(t, store.ToggleFavoriteDestination(ctx, 1))
	assert.False(t, store.ToggleFavoriteDestination(ctx, 3))

	assert.Equal(t, []int64{1}, store.FavoriteIDs())
	assert.True(t, store.IsFavorite(1))
	assert.False(t, store.IsFavorite(3))
}

func TestDestinationStore_ToggleFavorite_StorageFailureKeepsToggle(t *testing.T) {
	favorites := mocks.NewFavoriteRepository(t)
	store, _ := newDestinationStore(t, favorites)
	ctx := context.Background()

	favorites.On("SaveFavorites", ctx, "device-1", []int64{8}).Return(errors.New("disk full"))

	store.ToggleFavoriteDestination(ctx, 8)

	assert.Equal(t, []int64{8}, store.FavoriteIDs())
	assert.Empty(t, store.Error())
}

func TestDestinationStore_LoadFavorites(t *testing.T) {
	favorites := mocks.NewFavoriteRepository(t)
	store, _ := newDestinationStore(t, favorites)
	ctx := context.Background()

	favorites.On("LoadFavorites", ctx, "device-1").Return([]int64{2, 4}, nil)

	store.LoadFavorites(ctx)

	assert.Equal(t, []int64{2, 4}, store.FavoriteIDs())
}

func TestDestinationStore_FilteredDestinations(t *testing.T) {
	store, _ := loadedDestinationStore(t)

	assert.Equal(t, []string{"Tokyo", "Paris", "Lisbon", "bangkok"}, cities(store.FilteredDestinations()))

	store.SetSortOption(services.SortByPrice)
	assert.Equal(t, []string{"Lisbon", "Paris", "bangkok", "Tokyo"}, cities(store.FilteredDestinations()))

	store.SetSortOption(services.SortByName)
	assert.Equal(t, []string{"bangkok", "Lisbon", "Paris", "Tokyo"}, cities(store.FilteredDestinations()))

	store.SetRegionFilter("Europe")
	assert.Equal(t, []string{"Lisbon", "Paris"}, cities(store.FilteredDestinations()))

	store.SetRegionFilter(services.AllRegions)
	store.SetSearchQuery("JAP")
	assert.Equal(t, []string{"Tokyo"}, cities(store.FilteredDestinations()))

	store.SetSearchQuery("zzz")
	assert.Empty(t, store.FilteredDestinations())
}

func TestDestinationStore_FavoritesAndRegions(t *testing.T) {
	store, _ := loadedDestinationStore(t)
	ctx := context.Background()

	store.ToggleFavoriteDestination(ctx, 4)
	store.ToggleFavoriteDestination(ctx, 1)

	assert.Equal(t, []string{"Paris", "bangkok"}, cities(store.FavoriteDestinations()))
	assert.Equal(t, []string{"all", "Europe", "Asia"}, store.UniqueRegions())
}

func TestDestinationStore_SearchDestinations(t *testing.T) {
	store, api := loadedDestinationStore(t)
	ctx := context.Background()

	api.On("SearchDestinations", ctx, "tok").Return([]domain.Destination{catalog[1]}, nil)

	assert.True(t, store.SearchDestinations(ctx, "tok"))
	assert.Len(t, store.SearchResults(), 1)
	assert.Len(t, store.Destinations(), len(catalog))
}
