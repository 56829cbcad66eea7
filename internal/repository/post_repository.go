package repository

import (
	"circlenet_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Owner").First(&post, "id = ?", id).Error
	return &post, err
}

func (r *PostRepository) FindByIDForOwner(id, ownerID string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&post).Error
	return &post, err
}

func (r *PostRepository) ListByOwner(ownerID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) Delete(post *model.Post) error {
	return r.DB.Delete(post).Error
}

// Feed resolves the posts visible to viewerID: walk the reverse edges
// (connections pointing at the viewer) to the circle memberships that
// include the viewer, forward through the fan-out index to published posts,
// and union the viewer's own posts. The IN-set naturally de-duplicates a
// post published to several shared circles.
func (r *PostRepository) Feed(viewerID string) ([]model.Post, error) {
	reverseConns := r.DB.Model(&model.Connection{}).
		Select("id").
		Where("other_user_id = ?", viewerID)

	memberships := r.DB.Model(&model.CircleMembership{}).
		Select("id").
		Where("connection_id IN (?)", reverseConns)

	visiblePostIDs := r.DB.Model(&model.PostUser{}).
		Select("post_circles.post_id").
		Joins("JOIN post_circles ON post_circles.id = post_users.post_circle_id").
		Where("post_users.circle_membership_id IN (?)", memberships)

	var posts []model.Post
	err := r.DB.Preload("Owner").
		Where("id IN (?) OR owner_id = ?", visiblePostIDs, viewerID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// FeedFor resolves posterID's posts as seen by viewerID, through the single
// outgoing edge Connection(owner=poster, other=viewer) — not the viewer's
// reverse edge, which would leak posts scoped to other circles.
func (r *PostRepository) FeedFor(viewerID, posterID string) ([]model.Post, error) {
	conn := r.DB.Model(&model.Connection{}).
		Select("id").
		Where("owner_id = ? AND other_user_id = ?", posterID, viewerID)

	memberships := r.DB.Model(&model.CircleMembership{}).
		Select("id").
		Where("connection_id IN (?)", conn)

	visiblePostIDs := r.DB.Model(&model.PostUser{}).
		Select("post_circles.post_id").
		Joins("JOIN post_circles ON post_circles.id = post_users.post_circle_id").
		Where("post_users.circle_membership_id IN (?)", memberships)

	var posts []model.Post
	err := r.DB.Preload("Owner").
		Where("id IN (?)", visiblePostIDs).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetOrCreatePostCircle returns the existing publication link or creates a
// new one; created reports which, so the fan-out runs once per link.
func (r *PostRepository) GetOrCreatePostCircle(tx *gorm.DB, circleID, postID string) (*model.PostCircle, bool, error) {
	var pc model.PostCircle
	err := tx.Where("circle_id = ? AND post_id = ?", circleID, postID).First(&pc).Error
	if err == nil {
		return &pc, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	pc = model.PostCircle{CircleID: circleID, PostID: postID}
	if err := tx.Create(&pc).Error; err != nil {
		return nil, false, err
	}
	return &pc, true, nil
}

func (r *PostRepository) MembershipIDsByCircle(tx *gorm.DB, circleID string) ([]string, error) {
	var ids []string
	err := tx.Model(&model.CircleMembership{}).
		Where("circle_id = ?", circleID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *PostRepository) CreatePostUser(tx *gorm.DB, pu *model.PostUser) error {
	return tx.Create(pu).Error
}

// DeletePostCircle withdraws a post from one circle; the fan-out rows
// cascade with it.
func (r *PostRepository) DeletePostCircle(circleID, postID string) error {
	return r.DB.
		Where("circle_id = ? AND post_id = ?", circleID, postID).
		Delete(&model.PostCircle{}).Error
}

// CirclesOf lists the circles a post is currently published to.
func (r *PostRepository) CirclesOf(postID string) ([]model.Circle, error) {
	var circles []model.Circle
	err := r.DB.
		Joins("JOIN post_circles ON post_circles.circle_id = circles.id").
		Where("post_circles.post_id = ?", postID).
		Find(&circles).Error
	return circles, err
}
