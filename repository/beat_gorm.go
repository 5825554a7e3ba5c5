package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beatwave/model"
)

// GormBeatRepository GORM 实现，catalog order 由 position 列决定
type GormBeatRepository struct {
	db *gorm.DB
}

// NewGormBeatRepository 创建 GORM 曲目仓库
func NewGormBeatRepository(db *gorm.DB) *GormBeatRepository {
	return &GormBeatRepository{db: db}
}

// ListBeats 按目录顺序返回全部曲目
func (r *GormBeatRepository) ListBeats(ctx context.Context) ([]model.Beat, error) {
	var beats []model.Beat
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&beats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beats: %w", err)
	}
	return beats, nil
}

// GetBeat 根据ID获取曲目
func (r *GormBeatRepository) GetBeat(ctx context.Context, id string) (*model.Beat, error) {
	var beat model.Beat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&beat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBeatNotFound, id)
		}
		return nil, fmt.Errorf("failed to get beat %s: %w", id, err)
	}
	return &beat, nil
}

// Seed upserts beats, keeping their slice order as catalog order. Existing
// rows are overwritten.
func (r *GormBeatRepository) Seed(ctx context.Context, beats []model.Beat) error {
	if len(beats) == 0 {
		return nil
	}
	rows := make([]model.Beat, len(beats))
	for i, b := range beats {
		rows[i] = b
		rows[i].Position = i
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed beats: %w", err)
	}
	return nil
}

// RecordPlay 播放计数加一
func (r *GormBeatRepository) RecordPlay(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Beat{}).
		Where("id = ?", id).
		UpdateColumn("plays", gorm.Expr("plays + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to record play for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrBeatNotFound, id)
	}
	return nil
}
