// Package tenant checks whether an app id is registered in the client
// directory. The directory is read-only from this service's perspective;
// existence of the key is the only fact consulted.
package tenant

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Directory reports whether an app id exists in the tenant directory.
type Directory interface {
	Exists(ctx context.Context, appID string) bool
}

type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoDirectory looks up app ids in a DynamoDB table keyed by app_id.
type DynamoDirectory struct {
	client dynamoAPI
	table  string
}

// NewDynamoDirectory builds a directory over the given table.
func NewDynamoDirectory(cfg aws.Config, table string) *DynamoDirectory {
	return &DynamoDirectory{client: dynamodb.NewFromConfig(cfg), table: table}
}

// Exists returns true only when the app id is present. Backend errors are
// logged with a distinct prefix and reported as "not found" so that an
// outage rejects registration instead of admitting an unverified tenant.
func (d *DynamoDirectory) Exists(ctx context.Context, appID string) bool {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"app_id": &types.AttributeValueMemberS{Value: appID},
		},
	})
	if err != nil {
		log.Printf("tenant directory error: app_id=%s: %v", appID, err)
		return false
	}
	return len(out.Item) > 0
}
