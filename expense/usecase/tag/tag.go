package tag

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
)

type tagUseCase struct {
	tagRepo domain.TagRepo
	logger  *loggerKit.Logger
}

func CreateTagUseCase(tagRepo domain.TagRepo, logger *loggerKit.Logger) (domain.TagUseCase, error) {
	if logger == nil {
		return nil, errors.New("create tag use case failed")
	}
	return &tagUseCase{
		tagRepo: tagRepo,
		logger:  logger,
	}, nil
}

func (t *tagUseCase) Create(ctx context.Context, accountID int64, name, color string) (*domain.Tag, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	tag := domain.Tag{
		AccountID: accountID,
		Name:      name,
		Color:     strings.TrimSpace(color),
	}
	if err := t.tagRepo.Create(&tag); err != nil {
		return nil, errors.Wrap(err, "create tag failed")
	}
	return &tag, nil
}

func (t *tagUseCase) Update(ctx context.Context, accountID, tagID int64, name, color string) (*domain.Tag, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := t.tagRepo.Update(tagID, accountID, name, strings.TrimSpace(color))
	if err != nil {
		return nil, errors.Wrap(err, "update tag failed")
	}
	if rowsAffected == 0 {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	}

	tag, err := t.tagRepo.Get(tagID)
	if err != nil {
		return nil, errors.Wrap(err, "get tag failed")
	}
	return tag, nil
}

func (t *tagUseCase) Delete(ctx context.Context, accountID, tagID int64) error {
	rowsAffected, err := t.tagRepo.SoftDelete(tagID, accountID)
	if err != nil {
		return errors.Wrap(err, "delete tag failed")
	}
	if rowsAffected == 0 {
		return code.CreateErrorCode(http.StatusNotFound)
	}
	return nil
}

func (t *tagUseCase) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Tag, error) {
	tags, err := t.tagRepo.ListByAccount(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "list tags failed")
	}
	return tags, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", code.CreateErrorCode(http.StatusBadRequest).AddCode(code.NameEmpty, "tag")
	}
	return name, nil
}
