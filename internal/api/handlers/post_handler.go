package handlers

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/internal/api/presenters"
	"Recipe-Marketplace/pkg/post"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"strings"
)

type (
	PostHandler interface {
		GetPosts(c *fiber.Ctx) error
		GetCategories(c *fiber.Ctx) error
		GetSliders(c *fiber.Ctx) error
		GetPostsByCategory(c *fiber.Ctx) error
		SearchPosts(c *fiber.Ctx) error
		GetCrossReferences(c *fiber.Ctx) error
		GetMyPosts(c *fiber.Ctx) error
		GetPostDetail(c *fiber.Ctx) error
		CreatePost(c *fiber.Ctx) error
		DeletePost(c *fiber.Ctx) error
		ContactOwner(c *fiber.Ctx) error
	}

	postHandler struct {
		postService post.PostService
		validator   *validator.Validate
	}
)

func NewPostHandler(postService post.PostService, validator *validator.Validate) PostHandler {
	return &postHandler{
		postService: postService,
		validator:   validator,
	}
}

func (h *postHandler) GetPosts(c *fiber.Ctx) error {
	page, limit := pagination(c)

	res, err := h.postService.GetLatestPosts(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *postHandler) GetCategories(c *fiber.Ctx) error {
	res, err := h.postService.GetCategories(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetCategories, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *postHandler) GetSliders(c *fiber.Ctx) error {
	res, err := h.postService.GetSliders(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetSliders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSliders)
}

func (h *postHandler) GetPostsByCategory(c *fiber.Ctx) error {
	res, err := h.postService.GetPostsByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

// SearchPosts treats a blank query as "no search yet" and returns nothing.
func (h *postHandler) SearchPosts(c *fiber.Ctx) error {
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		return presenters.SuccessResponse(c, domain.SearchPostsResponse{
			Term:  term,
			Posts: []domain.Post{},
		}, fiber.StatusOK, domain.MessageSuccessSearchPosts)
	}

	res, err := h.postService.SearchPosts(c.Context(), term)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSearchPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchPosts)
}

func (h *postHandler) GetCrossReferences(c *fiber.Ctx) error {
	res, err := h.postService.GetMultiPostIngredients(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetCrossRefs, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCrossRefs)
}

func (h *postHandler) GetMyPosts(c *fiber.Ctx) error {
	res, err := h.postService.GetUserPosts(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPosts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPosts)
}

func (h *postHandler) GetPostDetail(c *fiber.Ctx) error {
	res, err := h.postService.GetPostDetail(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPostDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPostDetail)
}

func (h *postHandler) CreatePost(c *fiber.Ctx) error {
	req := new(domain.CreatePostRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePost, err)
	}

	res, err := h.postService.CreatePost(c.Context(), *req, currentSession(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePost, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePost)
}

func (h *postHandler) DeletePost(c *fiber.Ctx) error {
	if err := h.postService.DeletePost(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeletePost, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePost)
}

func (h *postHandler) ContactOwner(c *fiber.Ctx) error {
	req := new(domain.ContactOwnerRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
	}

	if err := h.postService.ContactOwner(c.Context(), c.Params("id"), *req, currentSession(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedContactOwner, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessContactOwner)
}
