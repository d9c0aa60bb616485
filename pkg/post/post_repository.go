package post

import (
	"Recipe-Marketplace/entities"
	"context"
	"gorm.io/gorm"
)

// titleRangeSuffix closes the title prefix range: [term, term+U+F8FF].
const titleRangeSuffix = "\uf8ff"

type (
	PostRepository interface {
		CreatePost(ctx context.Context, post *entities.Post) error
		GetPostByID(ctx context.Context, id string) (*entities.Post, error)
		GetAllPosts(ctx context.Context) ([]*entities.Post, error)
		GetLatestPosts(ctx context.Context, page, limit int) ([]*entities.Post, int64, error)
		GetPostsByCategory(ctx context.Context, category string) ([]*entities.Post, error)
		GetPostsByUser(ctx context.Context, userID string) ([]*entities.Post, error)
		GetPostsByTitlePrefix(ctx context.Context, term string) ([]*entities.Post, error)
		DeletePost(ctx context.Context, id string) error
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetSliders(ctx context.Context) ([]*entities.Slider, error)
	}

	postRepository struct {
		db *gorm.DB
	}
)

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id string) (*entities.Post, error) {
	var post entities.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetAllPosts(ctx context.Context) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetLatestPosts(ctx context.Context, page, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Post{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

func (r *postRepository) GetPostsByCategory(ctx context.Context, category string) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetPostsByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetPostsByTitlePrefix(ctx context.Context, term string) ([]*entities.Post, error) {
	var posts []*entities.Post
	if err := r.db.WithContext(ctx).
		Where("title >= ? AND title <= ?", term, term+titleRangeSuffix).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.Post{}, "id = ?", id).Error
}

func (r *postRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Order("position asc, name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *postRepository) GetSliders(ctx context.Context) ([]*entities.Slider, error) {
	var sliders []*entities.Slider
	if err := r.db.WithContext(ctx).
		Order("position asc, created_at asc").
		Find(&sliders).Error; err != nil {
		return nil, err
	}
	return sliders, nil
}
