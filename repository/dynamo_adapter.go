package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront-service/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DynamoAPI is the subset of the DynamoDB client the adapter uses.
type DynamoAPI interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoAdapter is a ProductRepo backed by a DynamoDB table keyed on `id`.
type DynamoAdapter struct {
	client DynamoAPI
	table  string
}

func NewDynamoAdapter(client DynamoAPI, table string) *DynamoAdapter {
	return &DynamoAdapter{client: client, table: table}
}

type ddbProduct struct {
	ID          string   `dynamodbav:"id"`
	Title       *string  `dynamodbav:"title,omitempty"`
	Platform    *string  `dynamodbav:"platform,omitempty"`
	Price       *float64 `dynamodbav:"price,omitempty"`
	PrevPrice   *float64 `dynamodbav:"prevprice,omitempty"`
	Sale        bool     `dynamodbav:"sale"`
	Preorder    bool     `dynamodbav:"preorder"`
	ReleaseDate *string  `dynamodbav:"releasedate,omitempty"`
	Description *string  `dynamodbav:"description,omitempty"`
	ImgLink     *string  `dynamodbav:"imglink,omitempty"`
	DateAdded   string   `dynamodbav:"dateadded"`
}

func toDDB(p *models.Product) ddbProduct {
	dp := ddbProduct{
		ID:          p.ID.String(),
		Title:       p.Title,
		Platform:    p.Platform,
		Sale:        p.Sale,
		Preorder:    p.Preorder,
		ReleaseDate: p.ReleaseDate,
		Description: p.Description,
		ImgLink:     p.ImgLink,
		DateAdded:   p.DateAdded.UTC().Format(time.RFC3339Nano),
	}
	if p.Price.Valid {
		f := p.Price.Decimal.InexactFloat64()
		dp.Price = &f
	}
	if p.PrevPrice.Valid {
		f := p.PrevPrice.Decimal.InexactFloat64()
		dp.PrevPrice = &f
	}
	return dp
}

func fromDDB(dp ddbProduct) models.Product {
	p := models.Product{
		Title:       dp.Title,
		Platform:    dp.Platform,
		Sale:        dp.Sale,
		Preorder:    dp.Preorder,
		ReleaseDate: dp.ReleaseDate,
		Description: dp.Description,
		ImgLink:     dp.ImgLink,
	}
	p.ID, _ = uuid.Parse(dp.ID)
	if dp.Price != nil {
		p.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*dp.Price))
	}
	if dp.PrevPrice != nil {
		p.PrevPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*dp.PrevPrice))
	}
	if t, err := time.Parse(time.RFC3339Nano, dp.DateAdded); err == nil {
		p.DateAdded = t
	}
	return p
}

func (d *DynamoAdapter) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(toDDB(product))
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &d.table,
		Item:                item,
		ConditionExpression: strPtr("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// List scans the table with the equality filters pushed down. The title
// search runs in memory because DynamoDB has no case-insensitive contains.
func (d *DynamoAdapter) List(ctx context.Context, filter models.CatalogFilter) ([]models.Product, error) {
	input := &dynamodb.ScanInput{TableName: &d.table}

	var conds []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}
	if filter.Platform != nil {
		conds = append(conds, "#platform = :platform")
		names["#platform"] = "platform"
		values[":platform"] = &types.AttributeValueMemberS{Value: *filter.Platform}
	}
	if filter.Sale {
		conds = append(conds, "#sale = :true")
		names["#sale"] = "sale"
		values[":true"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if filter.Preorder {
		conds = append(conds, "#preorder = :true")
		names["#preorder"] = "preorder"
		values[":true"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if len(conds) > 0 {
		input.FilterExpression = strPtr(strings.Join(conds, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var needle string
	if filter.Search != nil {
		needle = strings.ToLower(*filter.Search)
	}

	results := []models.Product{}
	paginator := dynamodb.NewScanPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan page failed: %w", err)
		}
		for _, it := range page.Items {
			var dp ddbProduct
			if err := attributevalue.UnmarshalMap(it, &dp); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			if filter.Search != nil {
				if dp.Title == nil || !strings.Contains(strings.ToLower(*dp.Title), needle) {
					continue
				}
			}
			results = append(results, fromDDB(dp))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DateAdded.After(results[j].DateAdded)
	})
	return results, nil
}

func strPtr(s string) *string { return &s }
