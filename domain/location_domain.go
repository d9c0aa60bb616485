package domain

import (
	"errors"
)

var (
	MessageSuccessUpsertLocation = "location saved successfully"
	MessageSuccessGetLocations   = "success get locations"
	MessageSuccessGetUserCard    = "success get user card"

	MessageFailedUpsertLocation = "failed to save location"
	MessageFailedGetLocations   = "failed to get locations"
	MessageFailedGetUserCard    = "failed to get user card"

	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

type (
	UpsertLocationRequest struct {
		Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
		Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
		Address   *string `json:"address,omitempty"`
	}

	UserLocation struct {
		ID        string  `json:"id"`
		UserID    string  `json:"user_uid"`
		UserName  string  `json:"user_name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   *string `json:"address"`
	}

	LocationsResponse struct {
		Term      string         `json:"term,omitempty"`
		Locations []UserLocation `json:"locations"`
	}

	UserCard struct {
		User  UserInfo `json:"user"`
		Posts []Post   `json:"posts"`
	}
)
