package tag

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moneybook/expense-tracker/domain"
	tagMySQLRepo "github.com/moneybook/expense-tracker/expense/repository/tag/mysql"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
)

func createTestTagUseCase(t *testing.T) domain.TagUseCase {
	logger, err := loggerKit.NewLogger(filepath.Join(t.TempDir(), "go.log"), loggerKit.InfoLevel, loggerKit.NoStdout)
	assert.Nil(t, err)

	ormDB, err := ormKit.CreateDB(ormKit.UseSQLite(filepath.Join(t.TempDir(), "test.db")))
	assert.Nil(t, err)
	schema, err := os.ReadFile(filepath.Join("../../repository/tag/mysql", "schema.sql"))
	assert.Nil(t, err)
	for _, statement := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		assert.Nil(t, ormDB.Exec(statement).Error)
	}

	tagUseCase, err := CreateTagUseCase(tagMySQLRepo.CreateTagRepo(ormDB), logger)
	assert.Nil(t, err)
	return tagUseCase
}

func TestTagLifecycle(t *testing.T) {
	tagUseCase := createTestTagUseCase(t)
	ctx := context.Background()
	accountID := int64(1)
	otherAccountID := int64(2)

	tag, err := tagUseCase.Create(ctx, accountID, "  food  ", "#ff0000")
	assert.Nil(t, err)
	assert.NotZero(t, tag.ID)
	assert.Equal(t, "food", tag.Name)

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := tagUseCase.Create(ctx, accountID, "   ", "")
		assert.Error(t, err)
		assert.Equal(t, "tag name cannot be empty", code.ParseErrorCode(err).Message)
	})

	t.Run("listing is owner-scoped", func(t *testing.T) {
		tags, err := tagUseCase.ListByAccount(ctx, accountID)
		assert.Nil(t, err)
		assert.Len(t, tags, 1)

		tags, err = tagUseCase.ListByAccount(ctx, otherAccountID)
		assert.Nil(t, err)
		assert.Empty(t, tags)
	})

	t.Run("update by another account is not found", func(t *testing.T) {
		_, err := tagUseCase.Update(ctx, otherAccountID, tag.ID, "groceries", "")
		assert.Error(t, err)
		assert.Equal(t, "not found", code.ParseErrorCode(err).Message)
	})

	t.Run("owner update", func(t *testing.T) {
		updated, err := tagUseCase.Update(ctx, accountID, tag.ID, "groceries", "#00ff00")
		assert.Nil(t, err)
		assert.Equal(t, "groceries", updated.Name)
		assert.Equal(t, "#00ff00", updated.Color)
	})

	t.Run("soft delete hides the tag from listings", func(t *testing.T) {
		assert.Nil(t, tagUseCase.Delete(ctx, accountID, tag.ID))

		tags, err := tagUseCase.ListByAccount(ctx, accountID)
		assert.Nil(t, err)
		assert.Empty(t, tags)

		// Mutating a deleted tag reports not found.
		_, err = tagUseCase.Update(ctx, accountID, tag.ID, "again", "")
		assert.Error(t, err)
		err = tagUseCase.Delete(ctx, accountID, tag.ID)
		assert.Error(t, err)
	})
}
