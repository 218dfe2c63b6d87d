package repository

import (
	"time"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

type tagEntity struct {
	domain.Tag
}

func (tagEntity) TableName() string {
	return "tag"
}

type tagRepo struct {
	db *ormKit.DB
}

func CreateTagRepo(db *ormKit.DB) domain.TagRepo {
	return &tagRepo{
		db: db,
	}
}

func (t *tagRepo) Create(tag *domain.Tag) error {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return errors.Wrap(err, "generate unique id failed")
	}

	now := time.Now()
	tag.ID = uniqueIDGenerate.Generate().GetInt64()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	if err := t.db.Create(&tagEntity{Tag: *tag}).Error; err != nil {
		return errors.Wrap(err, "create tag failed")
	}

	return nil
}

func (t *tagRepo) Get(tagID int64) (*domain.Tag, error) {
	var tag tagEntity
	if err := t.db.First(&tag, "id = ?", tagID); err != nil {
		return nil, errors.Wrap(err, "get tag failed")
	}
	return &tag.Tag, nil
}

func (t *tagRepo) GetByIDs(tagIDs []int64) (map[int64]*domain.Tag, error) {
	results := make(map[int64]*domain.Tag, len(tagIDs))
	if len(tagIDs) == 0 {
		return results, nil
	}

	var tags []*tagEntity
	if err := t.db.Model(&tagEntity{}).Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "get tags by ids failed")
	}
	for _, tag := range tags {
		results[tag.ID] = &tag.Tag
	}
	return results, nil
}

func (t *tagRepo) ListByAccount(accountID int64) ([]*domain.Tag, error) {
	var tags []*tagEntity
	if err := t.db.
		Model(&tagEntity{}).
		Where("account_id = ? AND deleted = ?", accountID, false).
		Order("created_at DESC").
		Find(&tags).Error; err != nil {
		return nil, errors.Wrap(err, "list tags failed")
	}
	results := make([]*domain.Tag, len(tags))
	for idx, tag := range tags {
		results[idx] = &tag.Tag
	}
	return results, nil
}

func (t *tagRepo) Update(tagID, accountID int64, name, color string) (int64, error) {
	tx := t.db.
		Model(&tagEntity{}).
		Where("id = ? AND account_id = ? AND deleted = ?", tagID, accountID, false).
		Updates(map[string]interface{}{
			"name":       name,
			"color":      color,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "update tag failed")
	}
	return tx.RowsAffected, nil
}

func (t *tagRepo) SoftDelete(tagID, accountID int64) (int64, error) {
	tx := t.db.
		Model(&tagEntity{}).
		Where("id = ? AND account_id = ? AND deleted = ?", tagID, accountID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "soft delete tag failed")
	}
	return tx.RowsAffected, nil
}
