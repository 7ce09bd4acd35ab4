package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/planguard/internal/usage/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func Provide(db *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &repo{db: db, genID: genID}
}

func (r *repo) GetOrCreate(ctx context.Context, subscriptionID, featureID snowflake.ID) (*domain.FeatureUsage, error) {
	now := time.Now().UTC()
	record := &domain.FeatureUsage{
		ID:             r.genID.Generate(),
		SubscriptionID: subscriptionID,
		FeatureID:      featureID,
		Quantity:       0,
		LastReset:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Insert-if-absent then re-read keeps first-touch creation safe under
	// concurrent checks on the same key.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscription_id"}, {Name: "feature_id"}},
			DoNothing: true,
		}).
		Create(record).Error
	if err != nil {
		return nil, err
	}

	var usage domain.FeatureUsage
	err = r.db.WithContext(ctx).
		Where("subscription_id = ? AND feature_id = ?", subscriptionID, featureID).
		First(&usage).Error
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

func (r *repo) Increment(ctx context.Context, subscriptionID, featureID snowflake.ID, quantity int64) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE feature_usages
		 SET quantity = quantity + ?, updated_at = ?
		 WHERE subscription_id = ? AND feature_id = ?`,
		quantity,
		time.Now().UTC(),
		subscriptionID,
		featureID,
	).Error
}

func (r *repo) Reset(ctx context.Context, usage *domain.FeatureUsage, now time.Time) error {
	if usage == nil {
		return domain.ErrInvalidUsage
	}
	err := r.db.WithContext(ctx).Exec(
		`UPDATE feature_usages
		 SET quantity = 0, last_reset = ?, updated_at = ?
		 WHERE id = ?`,
		now,
		now,
		usage.ID,
	).Error
	if err != nil {
		return err
	}
	usage.Quantity = 0
	usage.LastReset = now
	return nil
}
