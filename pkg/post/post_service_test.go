package post

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/entities"
	"Recipe-Marketplace/pkg/session"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"mime/multipart"
	"sync"
	"testing"
)

type fakePostRepository struct {
	mu         sync.Mutex
	posts      []*entities.Post
	categories []*entities.Category
	sliders    []*entities.Slider
	corpusHits int
	corpusCtx  error
	createErr  error
	deleted    []string
}

func (r *fakePostRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepository) GetPostByID(ctx context.Context, id string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepository) GetAllPosts(ctx context.Context) ([]*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.corpusHits++
	r.corpusCtx = ctx.Err()
	out := make([]*entities.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

func (r *fakePostRepository) GetLatestPosts(ctx context.Context, page, limit int) ([]*entities.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start := (page - 1) * limit
	if start >= len(r.posts) {
		return []*entities.Post{}, int64(len(r.posts)), nil
	}
	end := start + limit
	if end > len(r.posts) {
		end = len(r.posts)
	}
	return r.posts[start:end], int64(len(r.posts)), nil
}

func (r *fakePostRepository) GetPostsByCategory(ctx context.Context, category string) ([]*entities.Post, error) {
	var out []*entities.Post
	for _, p := range r.posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
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

func (r *fakePostRepository) GetPostsByTitlePrefix(ctx context.Context, term string) ([]*entities.Post, error) {
	return r.posts, nil
}

func (r *fakePostRepository) DeletePost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.posts[:0]
	for _, p := range r.posts {
		if p.ID.String() != id {
			kept = append(kept, p)
		}
	}
	r.posts = kept
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakePostRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	return r.categories, nil
}

func (r *fakePostRepository) GetSliders(ctx context.Context) ([]*entities.Slider, error) {
	return r.sliders, nil
}

type fakeS3 struct {
	uploaded  []string
	deleted   []string
	uploadErr error
}

func (s *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	key := folder + "/" + fileName + ".png"
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://cdn.test/"
	if len(link) <= len(prefix) || link[:len(prefix)] != prefix {
		return ""
	}
	return link[len(prefix):]
}

type sentMail struct {
	to, replyTo, subject, body string
}

type mailRecorder struct {
	sent []sentMail
	err  error
}

func (m *mailRecorder) send(to, replyTo, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, replyTo, subject, body})
	return m.err
}

func newPost(owner uuid.UUID, title string, ingredients ...string) *entities.Post {
	p := &entities.Post{ID: uuid.New(), UserID: owner, Title: title, UserEmail: "owner@recipes.test", UserName: "Owner"}
	for _, name := range ingredients {
		p.Ingredients = append(p.Ingredients, entities.PostItem{Name: name, Quantity: "1"})
	}
	return p
}

func newSession(uid uuid.UUID) *session.Session {
	s := session.New()
	s.Init(uid.String(), domain.UserInfo{ID: uid.String(), Name: "Buyer <b>", Email: "buyer@recipes.test"})
	return s
}

func setup(posts ...*entities.Post) (*postService, *fakePostRepository, *fakeS3, *mailRecorder) {
	repo := &fakePostRepository{posts: posts}
	s3 := &fakeS3{}
	mail := &mailRecorder{}
	svc := NewPostService(repo, s3, mail.send).(*postService)
	return svc, repo, s3, mail
}

func TestGetPostDetailFlagsCrossReferences(t *testing.T) {
	owner := uuid.New()
	detailPost := newPost(owner, "Garlic Soup", "Garlic ", "Water", "")
	svc, _, _, _ := setup(
		detailPost,
		newPost(owner, "Garlic Bread", "garlic", "Bread"),
		newPost(owner, "Tea", "Water"),
	)

	detail, err := svc.GetPostDetail(context.Background(), detailPost.ID.String())
	require.NoError(t, err)

	require.Len(t, detail.Ingredients, 3)
	assert.Equal(t, domain.IngredientView{Name: "Garlic ", Quantity: "1", IsCrossReference: true, SearchTerm: "Garlic "}, detail.Ingredients[0])
	assert.True(t, detail.Ingredients[1].IsCrossReference)
	assert.False(t, detail.Ingredients[2].IsCrossReference)
	assert.Empty(t, detail.Ingredients[2].SearchTerm)
	assert.Equal(t, "Garlic Soup", detail.Title)
}

func TestGetPostDetailRecomputesFromFreshCorpus(t *testing.T) {
	owner := uuid.New()
	p := newPost(owner, "Curry", "Lemongrass")
	svc, repo, _, _ := setup(p)

	detail, err := svc.GetPostDetail(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.False(t, detail.Ingredients[0].IsCrossReference)

	repo.posts = append(repo.posts, newPost(owner, "Amok", "lemongrass"))

	detail, err = svc.GetPostDetail(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.True(t, detail.Ingredients[0].IsCrossReference)
	assert.Equal(t, 2, repo.corpusHits)
}

func TestGetPostDetailNotFound(t *testing.T) {
	svc, _, _, _ := setup()

	_, err := svc.GetPostDetail(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	_, err = svc.GetPostDetail(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestGetMultiPostIngredientsSorted(t *testing.T) {
	owner := uuid.New()
	svc, _, _, _ := setup(
		newPost(owner, "A", "Salt", "Pepper"),
		newPost(owner, "B", " salt", "pepper", "Sugar"),
	)

	res, err := svc.GetMultiPostIngredients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pepper", "salt"}, res.Ingredients)
	assert.Equal(t, 2, res.Total)
}

func TestSearchPosts(t *testing.T) {
	owner := uuid.New()
	svc, _, _, _ := setup(
		newPost(owner, "Spicy Soup"),
		newPost(owner, "Dinner", "Garlic Paste"),
		newPost(owner, "Cake"),
	)

	res, err := svc.SearchPosts(context.Background(), "GARLIC")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Dinner", res.Posts[0].Title)

	res, err = svc.SearchPosts(context.Background(), "pizza")
	require.NoError(t, err)
	assert.Empty(t, res.Posts)
}

func TestDeletePostByIDOnly(t *testing.T) {
	owner := uuid.New()
	first := newPost(owner, "Same Title")
	first.ImageURL = "https://cdn.test/community-post/first.png"
	second := newPost(owner, "Same Title")
	svc, repo, s3, _ := setup(first, second)

	require.NoError(t, svc.DeletePost(context.Background(), first.ID.String(), owner.String()))

	require.Len(t, repo.posts, 1)
	assert.Equal(t, second.ID, repo.posts[0].ID)
	assert.Equal(t, []string{"community-post/first.png"}, s3.deleted)
}

func TestDeletePostRequiresOwner(t *testing.T) {
	p := newPost(uuid.New(), "Mine")
	svc, repo, _, _ := setup(p)

	err := svc.DeletePost(context.Background(), p.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedPostAccess)
	assert.Len(t, repo.posts, 1)
	assert.Empty(t, repo.deleted)
}

func TestCreatePost(t *testing.T) {
	svc, repo, s3, _ := setup()
	uid := uuid.New()

	res, err := svc.CreatePost(context.Background(), domain.CreatePostRequest{
		Title:       "Fish Amok",
		Ingredients: `[{"name":"Fish","quantity":"500g"},{"name":"","quantity":""},{"name":"Coconut milk","quantity":"1 can"}]`,
		Materials:   `[{"name":"Banana leaf","quantity":"4"}]`,
		Image:       &multipart.FileHeader{Filename: "amok.png"},
	}, newSession(uid))
	require.NoError(t, err)

	require.Len(t, repo.posts, 1)
	stored := repo.posts[0]
	assert.Equal(t, uid, stored.UserID)
	assert.Equal(t, "buyer@recipes.test", stored.UserEmail)
	assert.Equal(t, domain.DefaultPostCategory, stored.Category)
	assert.Equal(t, entities.PostItems{{Name: "Fish", Quantity: "500g"}, {Name: "Coconut milk", Quantity: "1 can"}}, stored.Ingredients)
	assert.Len(t, stored.Materials, 1)
	assert.Empty(t, stored.Equipments)
	assert.Len(t, s3.uploaded, 1)
	assert.Equal(t, "https://cdn.test/"+s3.uploaded[0], res.ImageURL)
	assert.Equal(t, stored.ID.String(), res.ID)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _, _ := setup()
	sess := newSession(uuid.New())

	_, err := svc.CreatePost(context.Background(), domain.CreatePostRequest{Title: "No image"}, sess)
	assert.ErrorIs(t, err, domain.ErrPostImageRequired)

	_, err = svc.CreatePost(context.Background(), domain.CreatePostRequest{
		Title:       "Bad list",
		Ingredients: `{"name":"Salt"}`,
		Image:       &multipart.FileHeader{},
	}, sess)
	assert.ErrorIs(t, err, domain.ErrInvalidPostItems)

	_, err = svc.CreatePost(context.Background(), domain.CreatePostRequest{Title: "x", Image: &multipart.FileHeader{}}, session.New())
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestCreatePostRemovesImageWhenStoreFails(t *testing.T) {
	svc, repo, s3, _ := setup()
	repo.createErr = errors.New("db down")

	_, err := svc.CreatePost(context.Background(), domain.CreatePostRequest{
		Title: "Soup",
		Image: &multipart.FileHeader{},
	}, newSession(uuid.New()))

	assert.Error(t, err)
	require.Len(t, s3.uploaded, 1)
	assert.Equal(t, s3.uploaded, s3.deleted)
}

func TestContactOwner(t *testing.T) {
	owner := uuid.New()
	p := newPost(owner, "Rice Cooker")
	svc, _, _, mail := setup(p)

	err := svc.ContactOwner(context.Background(), p.ID.String(), domain.ContactOwnerRequest{}, newSession(uuid.New()))
	require.NoError(t, err)

	require.Len(t, mail.sent, 1)
	sent := mail.sent[0]
	assert.Equal(t, "owner@recipes.test", sent.to)
	assert.Equal(t, "buyer@recipes.test", sent.replyTo)
	assert.Equal(t, "Regarding Rice Cooker", sent.subject)
	assert.Contains(t, sent.body, domain.ContactOwnerDefaultBody)
	assert.Contains(t, sent.body, "Buyer &lt;b&gt;")
}

func TestContactOwnerRejectsSelf(t *testing.T) {
	owner := uuid.New()
	p := newPost(owner, "Rice Cooker")
	svc, _, _, mail := setup(p)

	err := svc.ContactOwner(context.Background(), p.ID.String(), domain.ContactOwnerRequest{Message: "hi"}, newSession(owner))
	assert.ErrorIs(t, err, domain.ErrCannotContactSelf)
	assert.Empty(t, mail.sent)
}

func TestGetLatestPostsPagination(t *testing.T) {
	owner := uuid.New()
	svc, _, _, _ := setup(newPost(owner, "a"), newPost(owner, "b"), newPost(owner, "c"))

	res, err := svc.GetLatestPosts(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, res.Posts, 1)
	assert.Equal(t, int64(3), res.Pagination.Total)
	assert.Equal(t, int64(2), res.Pagination.TotalPages)
}

func TestGetUserPostsInvalidID(t *testing.T) {
	svc, _, _, _ := setup()

	_, err := svc.GetUserPosts(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestCorpusLoadSurvivesCanceledCaller(t *testing.T) {
	owner := uuid.New()
	svc, repo, _, _ := setup(
		newPost(owner, "A", "Salt"),
		newPost(owner, "B", "salt"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.GetMultiPostIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"salt"}, res.Ingredients)
	assert.NoError(t, repo.corpusCtx)
}

func TestGetSlidersSkipsMissingImages(t *testing.T) {
	svc, repo, _, _ := setup()
	first, second := uuid.New(), uuid.New()
	repo.sliders = []*entities.Slider{
		{ID: first, Name: "Ramadan", ImageURL: "https://cdn.test/sliders/ramadan.png", Position: 1},
		{ID: uuid.New(), Name: "Draft"},
		{ID: second, ImageURL: "https://cdn.test/sliders/market.png", Position: 2},
	}

	res, err := svc.GetSliders(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, first.String(), res[0].ID)
	assert.Equal(t, "Ramadan", res[0].Name)
	assert.Equal(t, second.String(), res[1].ID)

	repo.sliders = nil
	res, err = svc.GetSliders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}
