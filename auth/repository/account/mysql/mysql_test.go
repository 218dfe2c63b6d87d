package repository

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/moneybook/expense-tracker/domain"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	mysqlContainer "github.com/moneybook/expense-tracker/kit/testing/mysql/container"
)

func TestAccountRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("skip container test in short mode")
	}

	ctx := context.Background()
	mySQLContainer, err := mysqlContainer.CreateMySQL(ctx, "schema.sql")
	assert.Nil(t, err)
	defer mySQLContainer.Terminate(ctx)

	ormDB, err := ormKit.CreateDB(ormKit.UseMySQL(mySQLContainer.GetURI()))
	assert.Nil(t, err)

	accountRepo := CreateAccountRepo(ormDB)

	account := &domain.Account{
		Email:    "user@example.com",
		Name:     "user",
		Role:     domain.DefaultAccountRole,
		IsActive: true,
		Password: "hashed",
	}
	assert.Nil(t, accountRepo.Create(account))
	assert.NotZero(t, account.ID)

	t.Run("get by id and email", func(t *testing.T) {
		byID, err := accountRepo.Get(account.ID)
		assert.Nil(t, err)
		assert.Equal(t, account.Email, byID.Email)

		byEmail, err := accountRepo.GetByEmail(account.Email)
		assert.Nil(t, err)
		assert.Equal(t, account.ID, byEmail.ID)

		_, err = accountRepo.GetByEmail("nobody@example.com")
		assert.True(t, errors.Is(err, ormKit.ErrRecordNotFound))
	})

	t.Run("duplicated email", func(t *testing.T) {
		err := accountRepo.Create(&domain.Account{
			Email:    "user@example.com",
			Name:     "other",
			Role:     domain.DefaultAccountRole,
			IsActive: true,
			Password: "hashed",
		})
		assert.True(t, errors.Is(err, ormKit.ErrDuplicatedKey))
	})

	t.Run("list with name filter", func(t *testing.T) {
		accounts, err := accountRepo.List(0, 10, "use")
		assert.Nil(t, err)
		assert.Len(t, accounts, 1)

		accounts, err = accountRepo.List(0, 10, "missing")
		assert.Nil(t, err)
		assert.Empty(t, accounts)
	})

	t.Run("pre-assigned id is kept", func(t *testing.T) {
		preassigned := &domain.Account{
			ID:       12345,
			Email:    "preassigned@example.com",
			Name:     "preassigned",
			Role:     domain.DefaultAccountRole,
			IsActive: true,
			Password: "hashed",
		}
		assert.Nil(t, accountRepo.Create(preassigned))
		assert.Equal(t, int64(12345), preassigned.ID)
	})

	t.Run("update avatar", func(t *testing.T) {
		assert.Nil(t, accountRepo.UpdateAvatar(account.ID, "/uploads/me.png"))
		updated, err := accountRepo.Get(account.ID)
		assert.Nil(t, err)
		assert.Equal(t, "/uploads/me.png", updated.Avatar)
	})
}
