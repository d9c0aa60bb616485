// Package session carries the authenticated user through a request.
package session

import (
	"Recipe-Marketplace/domain"
)

const LocalsKey = "session"

type Session struct {
	Authenticated bool             `json:"authenticated"`
	UID           string           `json:"uid"`
	UserInfo      *domain.UserInfo `json:"user_info"`
}

func New() *Session {
	return &Session{}
}

func (s *Session) Init(uid string, info domain.UserInfo) {
	s.Authenticated = true
	s.UID = uid
	s.UserInfo = &info
}

// Update merges non-empty fields of partial into the profile.
func (s *Session) Update(partial domain.UserInfo) {
	if s.UserInfo == nil {
		s.UserInfo = &domain.UserInfo{}
	}
	if partial.Name != "" {
		s.UserInfo.Name = partial.Name
	}
	if partial.Email != "" {
		s.UserInfo.Email = partial.Email
	}
	if partial.ImageURL != "" {
		s.UserInfo.ImageURL = partial.ImageURL
	}
	if partial.Role != "" {
		s.UserInfo.Role = partial.Role
	}
}

func (s *Session) Clear() {
	*s = Session{}
}

func (s *Session) Info() domain.UserInfo {
	if s == nil || s.UserInfo == nil {
		return domain.UserInfo{}
	}
	return *s.UserInfo
}
