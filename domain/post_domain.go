package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	DefaultPostCategory       = "Library"
	PostImageFolder           = "community-post"
	ContactOwnerSubjectPrefix = "Regarding "
	ContactOwnerDefaultBody   = "I am interested in this product"
)

var (
	MessageSuccessCreatePost    = "post created successfully"
	MessageSuccessGetPosts      = "success get posts"
	MessageSuccessGetPostDetail = "success get post detail"
	MessageSuccessDeletePost    = "post deleted successfully"
	MessageSuccessSearchPosts   = "success search posts"
	MessageSuccessGetCategories = "success get categories"
	MessageSuccessGetSliders    = "success get sliders"
	MessageSuccessGetCrossRefs  = "success get cross-referenced ingredients"
	MessageSuccessContactOwner  = "message sent to post owner"

	MessageFailedCreatePost    = "failed to create post"
	MessageFailedGetPosts      = "failed to get posts"
	MessageFailedGetPostDetail = "failed to get post detail"
	MessageFailedDeletePost    = "failed to delete post"
	MessageFailedSearchPosts   = "failed to search posts"
	MessageFailedGetCategories = "failed to get categories"
	MessageFailedGetSliders    = "failed to get sliders"
	MessageFailedGetCrossRefs  = "failed to get cross-referenced ingredients"
	MessageFailedContactOwner  = "failed to send message to post owner"

	ErrPostNotFound           = errors.New("post not found")
	ErrUnauthorizedPostAccess = errors.New("unauthorized access to post")
	ErrInvalidPostItems       = errors.New("invalid ingredient, material or equipment list")
	ErrPostImageRequired      = errors.New("post image is required")
	ErrCannotContactSelf      = errors.New("cannot send a message to your own post")
)

type (
	CreatePostRequest struct {
		Title       string                `json:"title" form:"title" validate:"required"`
		Description string                `json:"description" form:"description"`
		Category    string                `json:"category" form:"category"`
		Method      string                `json:"method" form:"method"`
		Price       string                `json:"price" form:"price"`
		Address     string                `json:"address" form:"address"`
		Ingredients string                `json:"ingredients" form:"ingredients"` // JSON list of {name, quantity}
		Materials   string                `json:"materials" form:"materials"`
		Equipments  string                `json:"equipments" form:"equipments"`
		Image       *multipart.FileHeader `json:"image" form:"image"`
	}

	PostItem struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}

	// IngredientView is an ingredient as the detail screen renders it.
	// SearchTerm is the original display name, forwarded to search when
	// IsCrossReference is set.
	IngredientView struct {
		Name             string `json:"name"`
		Quantity         string `json:"quantity"`
		IsCrossReference bool   `json:"is_cross_reference"`
		SearchTerm       string `json:"search_term,omitempty"`
	}

	PostOwner struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		ImageURL string `json:"image_url,omitempty"`
	}

	Post struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Category    string     `json:"category"`
		Method      string     `json:"method,omitempty"`
		Price       string     `json:"price,omitempty"`
		Address     string     `json:"address,omitempty"`
		ImageURL    string     `json:"image_url,omitempty"`
		Ingredients []PostItem `json:"ingredients"`
		Materials   []PostItem `json:"materials"`
		Equipments  []PostItem `json:"equipments"`
		Owner       PostOwner  `json:"owner"`
		CreatedAt   time.Time  `json:"created_at"`
	}

	PostDetail struct {
		Post
		Ingredients []IngredientView `json:"ingredients"`
	}

	PostListResponse struct {
		Posts      []Post             `json:"posts"`
		Pagination PaginationResponse `json:"pagination"`
	}

	SearchPostsResponse struct {
		Term  string `json:"term"`
		Posts []Post `json:"posts"`
		Total int    `json:"total"`
	}

	CrossReferenceResponse struct {
		Ingredients []string `json:"ingredients"`
		Total       int      `json:"total"`
	}

	Category struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		IconURL string `json:"icon_url,omitempty"`
	}

	Slider struct {
		ID       string `json:"id"`
		Name     string `json:"name,omitempty"`
		ImageURL string `json:"image_url"`
	}

	ContactOwnerRequest struct {
		Message string `json:"message"`
	}
)
