package post

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/entities"
	"Recipe-Marketplace/internal/utils/mailing"
	"Recipe-Marketplace/internal/utils/storage"
	"Recipe-Marketplace/pkg/ingredient"
	"Recipe-Marketplace/pkg/search"
	"Recipe-Marketplace/pkg/session"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"html"
	"strings"
)

const corpusKey = "corpus"

type (
	PostService interface {
		CreatePost(ctx context.Context, req domain.CreatePostRequest, sess *session.Session) (domain.Post, error)
		GetLatestPosts(ctx context.Context, page, limit int) (domain.PostListResponse, error)
		GetPostsByCategory(ctx context.Context, category string) ([]domain.Post, error)
		GetUserPosts(ctx context.Context, userID string) ([]domain.Post, error)
		GetPostDetail(ctx context.Context, id string) (domain.PostDetail, error)
		GetMultiPostIngredients(ctx context.Context) (domain.CrossReferenceResponse, error)
		SearchPosts(ctx context.Context, term string) (domain.SearchPostsResponse, error)
		DeletePost(ctx context.Context, id string, userID string) error
		ContactOwner(ctx context.Context, id string, req domain.ContactOwnerRequest, sess *session.Session) error
		GetCategories(ctx context.Context) ([]domain.Category, error)
		GetSliders(ctx context.Context) ([]domain.Slider, error)
	}

	postService struct {
		postRepository PostRepository
		s3             storage.AwsS3
		sendMail       mailing.Sender
		corpusLoads    singleflight.Group
	}
)

func NewPostService(postRepository PostRepository, s3 storage.AwsS3, sendMail mailing.Sender) PostService {
	return &postService{
		postRepository: postRepository,
		s3:             s3,
		sendMail:       sendMail,
	}
}

// corpus loads every post. Concurrent callers share one query; nothing is
// kept once it returns, so each request still sees a fresh snapshot.
// The shared query ignores cancellation of whichever caller started it.
func (s *postService) corpus(ctx context.Context) ([]*entities.Post, error) {
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.corpusLoads.Do(corpusKey, func() (interface{}, error) {
		return s.postRepository.GetAllPosts(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entities.Post), nil
}

func (s *postService) CreatePost(ctx context.Context, req domain.CreatePostRequest, sess *session.Session) (domain.Post, error) {
	userUUID, err := uuid.Parse(sess.UID)
	if err != nil {
		return domain.Post{}, domain.ErrParseUUID
	}

	if req.Image == nil {
		return domain.Post{}, domain.ErrPostImageRequired
	}

	ingredients, err := parseItems(req.Ingredients)
	if err != nil {
		return domain.Post{}, err
	}
	materials, err := parseItems(req.Materials)
	if err != nil {
		return domain.Post{}, err
	}
	equipments, err := parseItems(req.Equipments)
	if err != nil {
		return domain.Post{}, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultPostCategory
	}

	owner := sess.Info()
	post := &entities.Post{
		ID:          uuid.New(),
		UserID:      userUUID,
		UserEmail:   owner.Email,
		UserName:    owner.Name,
		UserImage:   owner.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Method:      req.Method,
		Price:       req.Price,
		Address:     req.Address,
		Ingredients: ingredients,
		Materials:   materials,
		Equipments:  equipments,
	}

	objectKey, err := s.s3.UploadFile(fmt.Sprintf("post-%s", post.ID.String()), req.Image, domain.PostImageFolder, storage.AllowImage...)
	if err != nil {
		return domain.Post{}, err
	}
	post.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.postRepository.CreatePost(ctx, post); err != nil {
		if delErr := s.s3.DeleteFile(objectKey); delErr != nil {
			log.Warnf("failed to remove orphaned post image %s: %v", objectKey, delErr)
		}
		return domain.Post{}, err
	}

	return ToDomainPost(post), nil
}

func (s *postService) GetLatestPosts(ctx context.Context, page, limit int) (domain.PostListResponse, error) {
	posts, count, err := s.postRepository.GetLatestPosts(ctx, page, limit)
	if err != nil {
		return domain.PostListResponse{}, err
	}

	return domain.PostListResponse{
		Posts: ToDomainPosts(posts),
		Pagination: domain.PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      count,
			TotalPages: (count + int64(limit) - 1) / int64(limit),
		},
	}, nil
}

func (s *postService) GetPostsByCategory(ctx context.Context, category string) ([]domain.Post, error) {
	posts, err := s.postRepository.GetPostsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return ToDomainPosts(posts), nil
}

func (s *postService) GetUserPosts(ctx context.Context, userID string) ([]domain.Post, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	posts, err := s.postRepository.GetPostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToDomainPosts(posts), nil
}

func (s *postService) GetPostDetail(ctx context.Context, id string) (domain.PostDetail, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return domain.PostDetail{}, err
	}

	posts, err := s.corpus(ctx)
	if err != nil {
		return domain.PostDetail{}, err
	}
	shared := ingredient.MultiPostIngredients(posts)

	views := make([]domain.IngredientView, 0, len(post.Ingredients))
	for _, item := range post.Ingredients {
		view := domain.IngredientView{
			Name:     item.Name,
			Quantity: item.Quantity,
		}
		if shared.Has(item.Name) {
			view.IsCrossReference = true
			view.SearchTerm = item.Name
		}
		views = append(views, view)
	}

	return domain.PostDetail{
		Post:        ToDomainPost(post),
		Ingredients: views,
	}, nil
}

func (s *postService) GetMultiPostIngredients(ctx context.Context) (domain.CrossReferenceResponse, error) {
	posts, err := s.corpus(ctx)
	if err != nil {
		return domain.CrossReferenceResponse{}, err
	}

	names := ingredient.MultiPostIngredients(posts).Sorted()
	return domain.CrossReferenceResponse{
		Ingredients: names,
		Total:       len(names),
	}, nil
}

func (s *postService) SearchPosts(ctx context.Context, term string) (domain.SearchPostsResponse, error) {
	posts, err := s.corpus(ctx)
	if err != nil {
		return domain.SearchPostsResponse{}, err
	}

	matched := ToDomainPosts(search.Search(posts, term))
	return domain.SearchPostsResponse{
		Term:  term,
		Posts: matched,
		Total: len(matched),
	}, nil
}

// DeletePost removes exactly one post, identified by id, after checking ownership.
func (s *postService) DeletePost(ctx context.Context, id string, userID string) error {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID.String() != userID {
		return domain.ErrUnauthorizedPostAccess
	}

	if post.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(post.ImageURL)
		if objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				log.Warnf("failed to delete image of post %s: %v", id, err)
			}
		}
	}

	return s.postRepository.DeletePost(ctx, id)
}

func (s *postService) ContactOwner(ctx context.Context, id string, req domain.ContactOwnerRequest, sess *session.Session) error {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return err
	}

	if post.UserID.String() == sess.UID {
		return domain.ErrCannotContactSelf
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = domain.ContactOwnerDefaultBody
	}

	sender := sess.Info()
	subject := domain.ContactOwnerSubjectPrefix + post.Title
	body := fmt.Sprintf(
		"<p>Hi %s</p><p>%s</p><p>%s (%s)</p>",
		html.EscapeString(post.UserName),
		html.EscapeString(message),
		html.EscapeString(sender.Name),
		html.EscapeString(sender.Email),
	)

	if err := s.sendMail(post.UserEmail, sender.Email, subject, body); err != nil {
		log.Errorf("failed to mail owner of post %s: %v", id, err)
		return err
	}
	return nil
}

func (s *postService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.postRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		result = append(result, domain.Category{
			ID:      c.ID.String(),
			Name:    c.Name,
			IconURL: c.IconURL,
		})
	}
	return result, nil
}

func (s *postService) GetSliders(ctx context.Context) ([]domain.Slider, error) {
	sliders, err := s.postRepository.GetSliders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Slider, 0, len(sliders))
	for _, sl := range sliders {
		if sl.ImageURL == "" {
			continue
		}
		result = append(result, domain.Slider{
			ID:       sl.ID.String(),
			Name:     sl.Name,
			ImageURL: sl.ImageURL,
		})
	}
	return result, nil
}

func (s *postService) getPost(ctx context.Context, id string) (*entities.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPostNotFound
	}

	post, err := s.postRepository.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// parseItems decodes a JSON list of {name, quantity}. Rows left completely
// blank by the form are dropped.
func parseItems(raw string) (entities.PostItems, error) {
	items := entities.PostItems{}
	if strings.TrimSpace(raw) == "" {
		return items, nil
	}

	var decoded []entities.PostItem
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, domain.ErrInvalidPostItems
	}

	for _, item := range decoded {
		if strings.TrimSpace(item.Name) == "" && strings.TrimSpace(item.Quantity) == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func ToDomainPost(post *entities.Post) domain.Post {
	return domain.Post{
		ID:          post.ID.String(),
		Title:       post.Title,
		Description: post.Description,
		Category:    post.Category,
		Method:      post.Method,
		Price:       post.Price,
		Address:     post.Address,
		ImageURL:    post.ImageURL,
		Ingredients: toDomainItems(post.Ingredients),
		Materials:   toDomainItems(post.Materials),
		Equipments:  toDomainItems(post.Equipments),
		Owner: domain.PostOwner{
			ID:       post.UserID.String(),
			Name:     post.UserName,
			Email:    post.UserEmail,
			ImageURL: post.UserImage,
		},
		CreatedAt: post.CreatedAt,
	}
}

func ToDomainPosts(posts []*entities.Post) []domain.Post {
	result := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		result = append(result, ToDomainPost(p))
	}
	return result
}

func toDomainItems(items entities.PostItems) []domain.PostItem {
	result := make([]domain.PostItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.PostItem{Name: item.Name, Quantity: item.Quantity})
	}
	return result
}
