package location

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/entities"
	"Recipe-Marketplace/pkg/geocode"
	"Recipe-Marketplace/pkg/post"
	"Recipe-Marketplace/pkg/session"
	"Recipe-Marketplace/pkg/user"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

type (
	LocationService interface {
		UpsertLocation(ctx context.Context, req domain.UpsertLocationRequest, sess *session.Session) (domain.UserLocation, error)
		GetMyLocation(ctx context.Context, userID string) (domain.UserLocation, error)
		GetLocations(ctx context.Context, term string) (domain.LocationsResponse, error)
		GetUserCard(ctx context.Context, userID string) (domain.UserCard, error)
	}

	locationService struct {
		locationRepository LocationRepository
		postRepository     post.PostRepository
		userRepository     user.UserRepository
		geocoder           geocode.Geocoder
		debouncer          *geocode.Debouncer
	}
)

func NewLocationService(
	locationRepository LocationRepository,
	postRepository post.PostRepository,
	userRepository user.UserRepository,
	geocoder geocode.Geocoder,
	debouncer *geocode.Debouncer,
) LocationService {
	return &locationService{
		locationRepository: locationRepository,
		postRepository:     postRepository,
		userRepository:     userRepository,
		geocoder:           geocoder,
		debouncer:          debouncer,
	}
}

func (s *locationService) UpsertLocation(ctx context.Context, req domain.UpsertLocationRequest, sess *session.Session) (domain.UserLocation, error) {
	userUUID, err := uuid.Parse(sess.UID)
	if err != nil {
		return domain.UserLocation{}, domain.ErrParseUUID
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return domain.UserLocation{}, domain.ErrInvalidLatitude
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return domain.UserLocation{}, domain.ErrInvalidLongitude
	}

	var address *string
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		trimmed := strings.TrimSpace(*req.Address)
		address = &trimmed
	}

	location := &entities.UserLocation{
		ID:        uuid.New(),
		UserID:    userUUID,
		UserName:  sess.Info().Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   address,
	}
	if err := s.locationRepository.UpsertLocation(ctx, location); err != nil {
		return domain.UserLocation{}, err
	}

	if address == nil {
		s.scheduleReverseGeocode(userUUID.String(), req.Latitude, req.Longitude)
	} else if s.debouncer != nil {
		s.debouncer.Cancel(userUUID.String())
	}

	stored, err := s.locationRepository.GetLocationByUser(ctx, userUUID.String())
	if err != nil {
		return domain.UserLocation{}, err
	}
	return toDomainLocation(stored), nil
}

// scheduleReverseGeocode fills the address of uid's pin once the position
// has stopped changing. A later move of the same pin supersedes this one.
func (s *locationService) scheduleReverseGeocode(uid string, latitude, longitude float64) {
	if s.geocoder == nil || s.debouncer == nil {
		return
	}

	s.debouncer.Trigger(uid, func(ctx context.Context) {
		address, err := s.geocoder.Reverse(ctx, latitude, longitude)
		if err != nil {
			if ctx.Err() == nil {
				log.Warnf("reverse geocode for user %s failed: %v", uid, err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err := s.locationRepository.UpdateAddress(ctx, uid, address); err != nil {
			log.Errorf("failed to store address for user %s: %v", uid, err)
		}
	})
}

func (s *locationService) GetMyLocation(ctx context.Context, userID string) (domain.UserLocation, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.UserLocation{}, domain.ErrParseUUID
	}

	location, err := s.locationRepository.GetLocationByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserLocation{}, domain.ErrLocationNotFound
		}
		return domain.UserLocation{}, err
	}
	return toDomainLocation(location), nil
}

func (s *locationService) GetLocations(ctx context.Context, term string) (domain.LocationsResponse, error) {
	locations, err := s.locationRepository.GetAllLocations(ctx)
	if err != nil {
		return domain.LocationsResponse{}, err
	}

	var candidates []*entities.Post
	if !IsClearTerm(term) {
		candidates, err = s.postRepository.GetPostsByTitlePrefix(ctx, term)
		if err != nil {
			return domain.LocationsResponse{}, err
		}
	}

	resolved := ResolveLocations(candidates, locations, term)
	return domain.LocationsResponse{
		Term:      term,
		Locations: toDomainLocations(resolved),
	}, nil
}

func (s *locationService) GetUserCard(ctx context.Context, userID string) (domain.UserCard, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.UserCard{}, domain.ErrUserNotFound
	}

	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserCard{}, domain.ErrUserNotFound
		}
		return domain.UserCard{}, err
	}

	posts, err := s.postRepository.GetPostsByUser(ctx, userID)
	if err != nil {
		return domain.UserCard{}, err
	}

	return domain.UserCard{
		User: domain.UserInfo{
			ID:       owner.ID.String(),
			Name:     owner.Name,
			Email:    owner.Email,
			ImageURL: owner.ImageURL,
			Role:     owner.Role,
		},
		Posts: post.ToDomainPosts(posts),
	}, nil
}

func toDomainLocation(location *entities.UserLocation) domain.UserLocation {
	return domain.UserLocation{
		ID:        location.ID.String(),
		UserID:    location.UserID.String(),
		UserName:  location.UserName,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Address:   location.Address,
	}
}

func toDomainLocations(locations []*entities.UserLocation) []domain.UserLocation {
	result := make([]domain.UserLocation, 0, len(locations))
	for _, l := range locations {
		result = append(result, toDomainLocation(l))
	}
	return result
}
