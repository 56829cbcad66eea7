package service

import (
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"circlenet_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// FeedService owns posts and the pre-fanned-out visibility index. Who can
// see a post is decided entirely at publish time: publishing into a circle
// records one row per membership existing at that moment, and later circle
// edits never revisit old posts.
type FeedService struct {
	PostRepo   *repository.PostRepository
	CircleRepo *repository.CircleRepository
}

func NewFeedService(postRepo *repository.PostRepository, circleRepo *repository.CircleRepository) *FeedService {
	return &FeedService{PostRepo: postRepo, CircleRepo: circleRepo}
}

type CreatePostInput struct {
	Text      string
	ImageURL  string
	CircleIDs []string
}

// CreatePost stores a post and, when circles are given, publishes it into
// them in the same transaction. A post needs text or an image.
func (s *FeedService) CreatePost(ownerID string, in CreatePostInput) (*model.Post, error) {
	if in.Text == "" && in.ImageURL == "" {
		return nil, util.ErrEmptyPost
	}

	if len(in.CircleIDs) > 0 {
		if err := s.assertOwnedCircles(ownerID, in.CircleIDs); err != nil {
			return nil, err
		}
	}

	post := &model.Post{OwnerID: ownerID, Text: in.Text, ImageURL: in.ImageURL}
	var rows int
	err := s.PostRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		var err error
		rows, err = s.publishTx(tx, post.ID, in.CircleIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	monitoring.FanoutRows.Add(float64(rows))
	return post, nil
}

// Publish fans an existing post out into more of the owner's circles.
// Circles the post is already published in are skipped, so republishing
// never duplicates fan-out rows.
func (s *FeedService) Publish(ownerID, postID string, circleIDs []string) error {
	post, err := s.PostRepo.FindByIDForOwner(postID, ownerID)
	if err != nil {
		return notFound(err)
	}
	if len(circleIDs) == 0 {
		return util.ErrEmptyCircleSet
	}
	if err := s.assertOwnedCircles(ownerID, circleIDs); err != nil {
		return err
	}

	var rows int
	err = s.PostRepo.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		rows, err = s.publishTx(tx, post.ID, circleIDs)
		return err
	})
	if err != nil {
		return err
	}

	monitoring.FanoutRows.Add(float64(rows))
	return nil
}

// publishTx fans the post out and reports how many visibility rows it wrote.
func (s *FeedService) publishTx(tx *gorm.DB, postID string, circleIDs []string) (int, error) {
	rows := 0
	for _, circleID := range circleIDs {
		pc, created, err := s.PostRepo.GetOrCreatePostCircle(tx, circleID, postID)
		if err != nil {
			return 0, err
		}
		if !created {
			continue
		}

		membershipIDs, err := s.PostRepo.MembershipIDsByCircle(tx, circleID)
		if err != nil {
			return 0, err
		}
		for _, mID := range membershipIDs {
			pu := &model.PostUser{PostCircleID: pc.ID, CircleMembershipID: mID}
			if err := s.PostRepo.CreatePostUser(tx, pu); err != nil {
				return 0, err
			}
			rows++
		}
	}
	return rows, nil
}

// Unpublish pulls a post out of one circle; the circle's fan-out rows
// cascade away with the link.
func (s *FeedService) Unpublish(ownerID, postID, circleID string) error {
	post, err := s.PostRepo.FindByIDForOwner(postID, ownerID)
	if err != nil {
		return notFound(err)
	}
	return s.PostRepo.DeletePostCircle(circleID, post.ID)
}

func (s *FeedService) Get(ownerID, postID string) (*model.Post, error) {
	post, err := s.PostRepo.FindByIDForOwner(postID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

// Circles reports which circles a post is currently published in.
func (s *FeedService) Circles(ownerID, postID string) ([]model.Circle, error) {
	post, err := s.PostRepo.FindByIDForOwner(postID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return s.PostRepo.CirclesOf(post.ID)
}

func (s *FeedService) ListOwn(ownerID string) ([]model.Post, error) {
	return s.PostRepo.ListByOwner(ownerID)
}

func (s *FeedService) DeletePost(ownerID, postID string) error {
	post, err := s.PostRepo.FindByIDForOwner(postID, ownerID)
	if err != nil {
		return notFound(err)
	}
	return s.PostRepo.Delete(post)
}

// Feed returns everything visible to the viewer, their own posts included,
// newest first. A post reachable through several circles appears once.
func (s *FeedService) Feed(viewerID string) ([]model.Post, error) {
	return s.PostRepo.Feed(viewerID)
}

// FeedFor returns the slice of the feed authored by one account.
func (s *FeedService) FeedFor(viewerID, posterID string) ([]model.Post, error) {
	if viewerID == posterID {
		return s.PostRepo.ListByOwner(viewerID)
	}
	return s.PostRepo.FeedFor(viewerID, posterID)
}

func (s *FeedService) assertOwnedCircles(ownerID string, circleIDs []string) error {
	owned, err := s.CircleRepo.CountOwnedIn(s.PostRepo.DB, ownerID, circleIDs)
	if err != nil {
		return err
	}
	if owned != int64(len(circleIDs)) {
		return util.ErrForeignCircle
	}
	return nil
}
