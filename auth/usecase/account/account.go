package account

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
	"github.com/moneybook/expense-tracker/kit/code"
	loggerKit "github.com/moneybook/expense-tracker/kit/logger"
	ormKit "github.com/moneybook/expense-tracker/kit/orm"
	utilKit "github.com/moneybook/expense-tracker/kit/util"
)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

type accountUseCase struct {
	accountRepo domain.AccountRepo
	avatarRepo  domain.AvatarRepo
	logger      *loggerKit.Logger
}

func CreateAccountUseCase(accountRepo domain.AccountRepo, avatarRepo domain.AvatarRepo, logger *loggerKit.Logger) (domain.AccountUseCase, error) {
	if logger == nil {
		return nil, errors.New("create account use case failed")
	}
	return &accountUseCase{
		accountRepo: accountRepo,
		avatarRepo:  avatarRepo,
		logger:      logger,
	}, nil
}

func (a *accountUseCase) Register(ctx context.Context, req domain.RegisterAccountRequest) (*domain.Account, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.NameEmpty, "account")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !isValidEmail(email) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.EmailInvalid)
	}

	if _, err := a.accountRepo.GetByEmail(email); err == nil {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.EmailDuplicated)
	} else if !errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "get account by email failed")
	}

	hash, err := utilKit.GetBcrypt(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "get bcrypt failed")
	}

	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}
	uniqueID := uniqueIDGenerate.Generate()

	account := domain.Account{
		ID:       uniqueID.GetInt64(),
		Email:    email,
		Name:     name,
		Role:     domain.DefaultAccountRole,
		IsActive: true,
		Password: hash,
	}

	// The blob is uploaded before the insert: a failed upload must not
	// leave an account row behind.
	var avatarKey string
	if req.Avatar != nil {
		avatarKey = uniqueID.GetBase62() + filepath.Ext(req.AvatarFilename)
		avatarReference, err := a.avatarRepo.Upload(ctx, req.Avatar, avatarKey)
		if err != nil {
			return nil, errors.Wrap(err, "upload avatar failed")
		}
		account.Avatar = avatarReference
	}

	if err := a.accountRepo.Create(&account); err != nil {
		if avatarKey != "" {
			if deleteErr := a.avatarRepo.Delete(ctx, avatarKey); deleteErr != nil {
				a.logger.With(loggerKit.String("key", avatarKey), loggerKit.Error(deleteErr)).Warn("delete orphan avatar failed")
			}
		}
		if errors.Is(err, ormKit.ErrDuplicatedKey) {
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.EmailDuplicated)
		}
		return nil, errors.Wrap(err, "create account failed")
	}

	return &account, nil
}

func (a *accountUseCase) UpdateAvatar(ctx context.Context, accountID int64, avatar io.Reader, filename string) (*domain.Account, error) {
	account, err := a.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	avatarKey := utilKit.Base62FromInt64(accountID) + filepath.Ext(filename)
	avatarReference, err := a.avatarRepo.Upload(ctx, avatar, avatarKey)
	if err != nil {
		return nil, errors.Wrap(err, "upload avatar failed")
	}
	if err := a.accountRepo.UpdateAvatar(accountID, avatarReference); err != nil {
		if deleteErr := a.avatarRepo.Delete(ctx, avatarKey); deleteErr != nil {
			a.logger.With(loggerKit.String("key", avatarKey), loggerKit.Error(deleteErr)).Warn("delete orphan avatar failed")
		}
		return nil, errors.Wrap(err, "update avatar failed")
	}
	account.Avatar = avatarReference
	return account, nil
}

func (a *accountUseCase) Get(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := a.accountRepo.Get(accountID)
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "get account failed")
	}
	return account, nil
}

func (a *accountUseCase) List(ctx context.Context, skip, limit int, name string) ([]*domain.Account, error) {
	accounts, err := a.accountRepo.List(skip, limit, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return nil, errors.Wrap(err, "list accounts failed")
	}
	return accounts, nil
}

func (a *accountUseCase) VerifyActive(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := a.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InactiveUser)
	}
	return account, nil
}

// validatePassword enforces the acceptance policy before hashing. Checks
// run in a fixed order and the first unmet rule wins.
func validatePassword(password string) error {
	if len(password) < 8 {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordPolicy, "password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordPolicy, "password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordPolicy, "password must contain at least one number")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.PasswordPolicy, "password must contain at least one special character")
	}
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	return strings.Contains(domainPart, ".") && !strings.ContainsAny(email, " \t")
}
