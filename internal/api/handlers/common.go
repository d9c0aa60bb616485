package handlers

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/internal/utils/storage"
	"Recipe-Marketplace/pkg/session"
	"errors"
	"github.com/gofiber/fiber/v2"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func currentSession(c *fiber.Ctx) *session.Session {
	sess, ok := c.Locals(session.LocalsKey).(*session.Session)
	if !ok || sess == nil {
		return session.New()
	}
	return sess
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrLocationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedPostAccess),
		errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrCannotContactSelf):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrInvalidPostItems),
		errors.Is(err, domain.ErrPostImageRequired),
		errors.Is(err, domain.ErrInvalidLatitude),
		errors.Is(err, domain.ErrInvalidLongitude),
		errors.Is(err, storage.ErrFileTypeNotAllowed),
		errors.Is(err, storage.ErrEmptyFile):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
