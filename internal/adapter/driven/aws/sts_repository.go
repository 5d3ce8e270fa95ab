package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/aws-cost-watch/internal/domain/repository"
)

// STSAPI is the subset of the STS client used to resolve the account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// AccountRepositoryImpl implementa o AccountRepository com o STS.
type AccountRepositoryImpl struct {
	client STSAPI
}

// NewAccountRepository cria o repositório a partir de um cliente STS.
func NewAccountRepository(client STSAPI) repository.AccountRepository {
	return &AccountRepositoryImpl{client: client}
}

// NewAccountRepositoryFromConfig cria o cliente STS a partir da aws.Config.
func NewAccountRepositoryFromConfig(cfg aws.Config) repository.AccountRepository {
	return NewAccountRepository(sts.NewFromConfig(cfg))
}

func (r *AccountRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	result, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	return aws.ToString(result.Account), nil
}
