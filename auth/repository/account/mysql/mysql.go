package repository

import (
	"time"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

type accountEntity struct {
	domain.Account
}

func (accountEntity) TableName() string {
	return "account"
}

type accountRepo struct {
	db *ormKit.DB
}

func CreateAccountRepo(db *ormKit.DB) domain.AccountRepo {
	return &accountRepo{
		db: db,
	}
}

func (a *accountRepo) Create(account *domain.Account) error {
	if account.ID == 0 {
		uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
		if err != nil {
			return errors.Wrap(err, "generate unique id failed")
		}
		account.ID = uniqueIDGenerate.Generate().GetInt64()
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := a.db.Create(&accountEntity{Account: *account}).Error; err != nil {
		if duplicatedErr, ok := ormKit.ConvertDuplicatedKeyErr(err); ok {
			return duplicatedErr
		}
		return errors.Wrap(err, "create account failed")
	}

	return nil
}

func (a *accountRepo) Get(accountID int64) (*domain.Account, error) {
	var account accountEntity
	if err := a.db.First(&account, "id = ?", accountID); err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}
	return &account.Account, nil
}

func (a *accountRepo) GetByEmail(email string) (*domain.Account, error) {
	var account accountEntity
	if err := a.db.First(&account, "email = ?", email); err != nil {
		return nil, errors.Wrap(err, "get account by email failed")
	}
	return &account.Account, nil
}

func (a *accountRepo) List(skip, limit int, name string) ([]*domain.Account, error) {
	tx := a.db.Model(&accountEntity{})
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+name+"%")
	}
	var accounts []*accountEntity
	if err := tx.Order("created_at DESC").Offset(skip).Limit(limit).Find(&accounts).Error; err != nil {
		return nil, errors.Wrap(err, "list accounts failed")
	}
	results := make([]*domain.Account, len(accounts))
	for idx, account := range accounts {
		results[idx] = &account.Account
	}
	return results, nil
}

func (a *accountRepo) UpdateAvatar(accountID int64, avatar string) error {
	if err := a.db.Model(&accountEntity{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"avatar":     avatar,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return errors.Wrap(err, "update avatar failed")
	}
	return nil
}
