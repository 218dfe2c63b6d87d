package jwt

import (
	"strconv"
	"time"

	jwtPKG "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
)

type tokenRepo struct {
	secret []byte
}

// CreateTokenRepo builds a stateless HS256 token repository. It is safe
// for concurrent use; signing and verification share the secret only.
func CreateTokenRepo(secret string) (domain.TokenRepo, error) {
	if secret == "" {
		return nil, errors.New("empty token secret")
	}
	return &tokenRepo{secret: []byte(secret)}, nil
}

func (t *tokenRepo) Generate(account *domain.Account, tokenType domain.TokenType, now, expireAt time.Time) (string, error) {
	token := jwtPKG.NewWithClaims(jwtPKG.SigningMethodHS256, jwtPKG.MapClaims{
		"sub":        strconv.FormatInt(account.ID, 10),
		"email":      account.Email,
		"role":       account.Role,
		"created_at": account.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at": account.UpdatedAt.UTC().Format(time.RFC3339),
		"iat":        now.Unix(),
		"exp":        expireAt.Unix(),
		"type":       string(tokenType),
	})
	signedToken, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token failed")
	}
	return signedToken, nil
}

func (t *tokenRepo) Verify(tokenString string, tokenType domain.TokenType) (*domain.TokenClaims, error) {
	token, err := jwtPKG.Parse(tokenString, func(token *jwtPKG.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtPKG.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if errors.Is(err, jwtPKG.ErrTokenExpired) {
		return nil, errors.Wrap(domain.ErrExpired, err.Error())
	} else if err != nil {
		// Malformed structure and bad signatures both land here.
		return nil, errors.Wrap(domain.ErrInvalidData, err.Error())
	}

	mapClaims, ok := token.Claims.(jwtPKG.MapClaims)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "unexpected claims type")
	}

	claims, err := parseClaims(mapClaims)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, errors.Wrap(domain.ErrInvalidData, "unexpected token type "+string(claims.Type))
	}
	return claims, nil
}

func parseClaims(mapClaims jwtPKG.MapClaims) (*domain.TokenClaims, error) {
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get sub claim failed")
	}
	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidData, "parse sub claim failed")
	}
	tokenType, ok := mapClaims["type"].(string)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get type claim failed")
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, errors.Wrap(domain.ErrInvalidData, "get exp claim failed")
	}

	claims := domain.TokenClaims{
		AccountID: accountID,
		Type:      domain.TokenType(tokenType),
		ExpireAt:  time.Unix(int64(exp), 0),
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if createdAt, ok := mapClaims["created_at"].(string); ok {
		claims.AccountCreatedAt = createdAt
	}
	if updatedAt, ok := mapClaims["updated_at"].(string); ok {
		claims.AccountUpdatedAt = updatedAt
	}
	return &claims, nil
}
