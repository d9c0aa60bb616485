package location

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/entities"
	"Recipe-Marketplace/pkg/geocode"
	"Recipe-Marketplace/pkg/session"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sync"
	"testing"
	"time"
)

type fakeLocationRepository struct {
	mu        sync.Mutex
	locations []*entities.UserLocation
	addresses chan string
}

func (r *fakeLocationRepository) UpsertLocation(ctx context.Context, location *entities.UserLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.UserID == location.UserID {
			l.UserName = location.UserName
			l.Latitude = location.Latitude
			l.Longitude = location.Longitude
			l.Address = location.Address
			return nil
		}
	}
	stored := *location
	r.locations = append(r.locations, &stored)
	return nil
}

func (r *fakeLocationRepository) GetLocationByUser(ctx context.Context, userID string) (*entities.UserLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.UserID.String() == userID {
			copied := *l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLocationRepository) GetAllLocations(ctx context.Context) ([]*entities.UserLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.UserLocation, len(r.locations))
	copy(out, r.locations)
	return out, nil
}

func (r *fakeLocationRepository) UpdateAddress(ctx context.Context, userID string, address string) error {
	r.mu.Lock()
	for _, l := range r.locations {
		if l.UserID.String() == userID {
			a := address
			l.Address = &a
		}
	}
	r.mu.Unlock()
	if r.addresses != nil {
		r.addresses <- address
	}
	return nil
}

type fakePostRepository struct {
	posts []*entities.Post
}

func (r *fakePostRepository) CreatePost(ctx context.Context, post *entities.Post) error { return nil }

func (r *fakePostRepository) GetPostByID(ctx context.Context, id string) (*entities.Post, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepository) GetAllPosts(ctx context.Context) ([]*entities.Post, error) {
	return r.posts, nil
}

func (r *fakePostRepository) GetLatestPosts(ctx context.Context, page, limit int) ([]*entities.Post, int64, error) {
	return r.posts, int64(len(r.posts)), nil
}

func (r *fakePostRepository) GetPostsByCategory(ctx context.Context, category string) ([]*entities.Post, error) {
	return nil, nil
}

func (r *fakePostRepository) GetPostsByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	var out []*entities.Post
	for _, p := range r.posts {
		if p.UserID.String() == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetPostsByTitlePrefix answers the way the range query does: case-sensitive prefix.
func (r *fakePostRepository) GetPostsByTitlePrefix(ctx context.Context, term string) ([]*entities.Post, error) {
	var out []*entities.Post
	for _, p := range r.posts {
		if len(p.Title) >= len(term) && p.Title[:len(term)] == term {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepository) DeletePost(ctx context.Context, id string) error { return nil }

func (r *fakePostRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	return nil, nil
}

func (r *fakePostRepository) GetSliders(ctx context.Context) ([]*entities.Slider, error) {
	return nil, nil
}

type fakeUserRepository struct {
	users []*entities.User
}

func (r *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error { return nil }

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepository) UpdateUser(ctx context.Context, user *entities.User) error { return nil }

type fakeGeocoder struct {
	address string
	err     error
}

func (g *fakeGeocoder) Reverse(ctx context.Context, latitude, longitude float64) (string, error) {
	return g.address, g.err
}

func userSession(uid uuid.UUID, name string) *session.Session {
	s := session.New()
	s.Init(uid.String(), domain.UserInfo{ID: uid.String(), Name: name})
	return s
}

func TestUpsertLocationKeepsOneRowPerUser(t *testing.T) {
	locations := &fakeLocationRepository{}
	svc := NewLocationService(locations, &fakePostRepository{}, &fakeUserRepository{}, nil, nil)
	uid := uuid.New()
	addr := "Jalan Merdeka 1"

	_, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 1, Longitude: 2, Address: &addr}, userSession(uid, "Ana"))
	require.NoError(t, err)

	got, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 3, Longitude: 4, Address: &addr}, userSession(uid, "Ana"))
	require.NoError(t, err)

	assert.Len(t, locations.locations, 1)
	assert.Equal(t, 3.0, got.Latitude)
	assert.Equal(t, uid.String(), got.UserID)
	require.NotNil(t, got.Address)
	assert.Equal(t, addr, *got.Address)
}

func TestUpsertLocationRejectsOutOfRange(t *testing.T) {
	svc := NewLocationService(&fakeLocationRepository{}, &fakePostRepository{}, &fakeUserRepository{}, nil, nil)
	sess := userSession(uuid.New(), "Ana")

	_, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 91}, sess)
	assert.ErrorIs(t, err, domain.ErrInvalidLatitude)

	_, err = svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Longitude: -181}, sess)
	assert.ErrorIs(t, err, domain.ErrInvalidLongitude)

	_, err = svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{}, session.New())
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestUpsertLocationReverseGeocodesMissingAddress(t *testing.T) {
	locations := &fakeLocationRepository{addresses: make(chan string, 1)}
	debouncer := geocode.NewDebouncer(10 * time.Millisecond)
	defer debouncer.Close()

	svc := NewLocationService(locations, &fakePostRepository{}, &fakeUserRepository{}, &fakeGeocoder{address: "Main Street, Springfield"}, debouncer)
	uid := uuid.New()

	got, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 10, Longitude: 20}, userSession(uid, "Ana"))
	require.NoError(t, err)
	assert.Nil(t, got.Address)

	select {
	case address := <-locations.addresses:
		assert.Equal(t, "Main Street, Springfield", address)
	case <-time.After(2 * time.Second):
		t.Fatal("address was never filled")
	}

	mine, err := svc.GetMyLocation(context.Background(), uid.String())
	require.NoError(t, err)
	require.NotNil(t, mine.Address)
	assert.Equal(t, "Main Street, Springfield", *mine.Address)
}

func TestUpsertLocationGeocodeFailureLeavesAddressNil(t *testing.T) {
	locations := &fakeLocationRepository{addresses: make(chan string, 1)}
	debouncer := geocode.NewDebouncer(5 * time.Millisecond)

	svc := NewLocationService(locations, &fakePostRepository{}, &fakeUserRepository{}, &fakeGeocoder{err: errors.New("boom")}, debouncer)
	uid := uuid.New()

	_, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 10, Longitude: 20}, userSession(uid, "Ana"))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	debouncer.Close()

	assert.Empty(t, locations.addresses)
	mine, err := svc.GetMyLocation(context.Background(), uid.String())
	require.NoError(t, err)
	assert.Nil(t, mine.Address)
}

func TestUpsertLocationTypedAddressCancelsPendingLookup(t *testing.T) {
	locations := &fakeLocationRepository{addresses: make(chan string, 1)}
	debouncer := geocode.NewDebouncer(20 * time.Millisecond)

	svc := NewLocationService(locations, &fakePostRepository{}, &fakeUserRepository{}, &fakeGeocoder{address: "Old Street"}, debouncer)
	uid := uuid.New()
	typed := "Jalan Baru 5"

	_, err := svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 1, Longitude: 1}, userSession(uid, "Ana"))
	require.NoError(t, err)

	_, err = svc.UpsertLocation(context.Background(), domain.UpsertLocationRequest{Latitude: 5, Longitude: 5, Address: &typed}, userSession(uid, "Ana"))
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	debouncer.Close()

	assert.Empty(t, locations.addresses)
	mine, err := svc.GetMyLocation(context.Background(), uid.String())
	require.NoError(t, err)
	require.NotNil(t, mine.Address)
	assert.Equal(t, typed, *mine.Address)
	assert.Equal(t, 5.0, mine.Latitude)
}

func TestGetMyLocationNotFound(t *testing.T) {
	svc := NewLocationService(&fakeLocationRepository{}, &fakePostRepository{}, &fakeUserRepository{}, nil, nil)

	_, err := svc.GetMyLocation(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestGetLocations(t *testing.T) {
	ana, budi, citra := uuid.New(), uuid.New(), uuid.New()
	locations := &fakeLocationRepository{locations: []*entities.UserLocation{
		{ID: uuid.New(), UserID: ana, UserName: "Ana"},
		{ID: uuid.New(), UserID: budi, UserName: "Budi"},
		{ID: uuid.New(), UserID: citra, UserName: "Citra"},
	}}
	posts := &fakePostRepository{posts: []*entities.Post{
		{ID: uuid.New(), UserID: ana, Title: "Tomato Soup"},
		{ID: uuid.New(), UserID: citra, Title: "Tomato Salad"},
		{ID: uuid.New(), UserID: budi, Title: "Green Tomato"},
	}}
	svc := NewLocationService(locations, posts, &fakeUserRepository{}, nil, nil)

	t.Run("blank term shows every pin", func(t *testing.T) {
		res, err := svc.GetLocations(context.Background(), "  ")
		require.NoError(t, err)
		assert.Len(t, res.Locations, 3)
	})

	t.Run("prefix match keeps input order", func(t *testing.T) {
		res, err := svc.GetLocations(context.Background(), "Tomato")
		require.NoError(t, err)
		require.Len(t, res.Locations, 2)
		assert.Equal(t, "Ana", res.Locations[0].UserName)
		assert.Equal(t, "Citra", res.Locations[1].UserName)
	})

	t.Run("case mismatch on prefix finds nobody", func(t *testing.T) {
		res, err := svc.GetLocations(context.Background(), "tomato")
		require.NoError(t, err)
		assert.NotNil(t, res.Locations)
		assert.Empty(t, res.Locations)
	})
}

func TestGetUserCard(t *testing.T) {
	owner := &entities.User{ID: uuid.New(), Name: "Ana", Email: "ana@recipes.test", Role: domain.RoleUser}
	posts := &fakePostRepository{posts: []*entities.Post{
		{ID: uuid.New(), UserID: owner.ID, Title: "Rendang"},
		{ID: uuid.New(), UserID: uuid.New(), Title: "Soto"},
	}}
	svc := NewLocationService(&fakeLocationRepository{}, posts, &fakeUserRepository{users: []*entities.User{owner}}, nil, nil)

	card, err := svc.GetUserCard(context.Background(), owner.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ana", card.User.Name)
	require.Len(t, card.Posts, 1)
	assert.Equal(t, "Rendang", card.Posts[0].Title)

	_, err = svc.GetUserCard(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
