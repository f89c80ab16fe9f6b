// Package secrets resolves named credential bundles from AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/scalexlabs/marketing-dashboard/internal/database"
)

// ErrSecretUnavailable is returned when the backing store errors or the
// secret name is absent. Handlers translate it into an "unexpected" redirect.
var ErrSecretUnavailable = errors.New("secret unavailable")

// Resolver looks up a named secret and parses it into a credential bundle.
type Resolver interface {
	Resolve(ctx context.Context, name string) (database.Credentials, error)
}

// TenantSecretName returns the per-tenant secret reference for an app id.
func TenantSecretName(appID string) string {
	return fmt.Sprintf("app/%s/database/credentials", appID)
}

// secretsAPI is the slice of the Secrets Manager client this package uses.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ManagerResolver resolves secrets from AWS Secrets Manager.
type ManagerResolver struct {
	client secretsAPI
}

// NewManagerResolver builds a resolver from a loaded AWS config.
func NewManagerResolver(cfg aws.Config) *ManagerResolver {
	return &ManagerResolver{client: secretsmanager.NewFromConfig(cfg)}
}

func (r *ManagerResolver) Resolve(ctx context.Context, name string) (database.Credentials, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return database.Credentials{}, fmt.Errorf("%w: %s: %v", ErrSecretUnavailable, name, err)
	}
	if out.SecretString == nil {
		return database.Credentials{}, fmt.Errorf("%w: %s: empty secret string", ErrSecretUnavailable, name)
	}
	var creds database.Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return database.Credentials{}, fmt.Errorf("%w: %s: %v", ErrSecretUnavailable, name, err)
	}
	log.Printf("secrets: fetched %s", name)
	return creds, nil
}
