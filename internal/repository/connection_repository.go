package repository

import (
	"circlenet_backend/internal/model"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const connectedIDsKey = "social:connected:%s"

type ConnectionRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewConnectionRepository(db *gorm.DB, rdb *redis.Client) *ConnectionRepository {
	return &ConnectionRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *ConnectionRepository) FindByID(id string) (*model.Connection, error) {
	var conn model.Connection
	err := r.DB.Preload("OtherUser").First(&conn, "id = ?", id).Error
	return &conn, err
}

// FindByIDForOwner only returns the connection when it belongs to ownerID,
// so foreign connections look like missing ones.
func (r *ConnectionRepository) FindByIDForOwner(id, ownerID string) (*model.Connection, error) {
	var conn model.Connection
	err := r.DB.Preload("OtherUser").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&conn).Error
	return &conn, err
}

func (r *ConnectionRepository) FindByOwnerAndOther(ownerID, otherID string) (*model.Connection, error) {
	var conn model.Connection
	err := r.DB.Where("owner_id = ? AND other_user_id = ?", ownerID, otherID).
		First(&conn).Error
	return &conn, err
}

// ListByOwner is the complete set of ownerID's connections; the mirrored
// rows owned by the other side are deliberately not included.
func (r *ConnectionRepository) ListByOwner(ownerID string) ([]model.Connection, error) {
	var conns []model.Connection
	err := r.DB.Preload("OtherUser").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}

func (r *ConnectionRepository) CountByOwner(tx *gorm.DB, ownerID string) (int64, error) {
	var count int64
	err := tx.Model(&model.Connection{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *ConnectionRepository) IsConnected(ownerID, otherID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Connection{}).
		Where("owner_id = ? AND other_user_id = ?", ownerID, otherID).
		Count(&count).Error
	return count > 0, err
}

// ConnectedIDs returns the IDs of every account ownerID is connected with,
// read through the redis cache when one is configured.
func (r *ConnectionRepository) ConnectedIDs(ownerID string) ([]string, error) {
	if r.Redis == nil {
		return r.connectedIDsFromDB(ownerID)
	}

	key := fmt.Sprintf(connectedIDsKey, ownerID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		ids := make([]string, 0, len(cached))
		for _, s := range cached {
			if s != "" && s != "-" {
				ids = append(ids, s)
			}
		}
		return ids, nil
	}

	ids, err := r.connectedIDsFromDB(ownerID)
	if err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else {
		// Negative entry with a short TTL to avoid repeated misses.
		r.Redis.SAdd(r.ctx, key, "-")
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, nil
}

func (r *ConnectionRepository) connectedIDsFromDB(ownerID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Connection{}).
		Where("owner_id = ?", ownerID).
		Pluck("other_user_id", &ids).Error
	return ids, err
}

// InvalidateCache drops both endpoints' cached connected-ID sets. Called
// after every pair create or delete.
func (r *ConnectionRepository) InvalidateCache(aID, bID string) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, fmt.Sprintf(connectedIDsKey, aID))
	r.Redis.Del(r.ctx, fmt.Sprintf(connectedIDsKey, bID))
}
