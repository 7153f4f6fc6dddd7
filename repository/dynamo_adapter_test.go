package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	pages   [][]map[string]types.AttributeValue
	scans   []*dynamodb.ScanInput
	puts    []*dynamodb.PutItemInput
	scanErr error
	putErr  error
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	idx := len(f.scans) - 1
	out := &dynamodb.ScanOutput{}
	if idx < len(f.pages) {
		out.Items = f.pages[idx]
	}
	if idx+1 < len(f.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "next"}}
	}
	return out, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.putErr
}

func item(t *testing.T, title string, added time.Time, price float64) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(ddbProduct{
		ID:        uuid.NewString(),
		Title:     &title,
		Price:     &price,
		DateAdded: added.Format(time.RFC3339Nano),
	})
	require.NoError(t, err)
	return av
}

func TestDynamoList_SortsNewestFirstAcrossPages(t *testing.T) {
	now := time.Now().UTC()
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{
		{item(t, "Old", now.Add(-48*time.Hour), 10)},
		{item(t, "New", now, 20), item(t, "Mid", now.Add(-time.Hour), 30)},
	}}
	adapter := NewDynamoAdapter(fake, "Products")

	products, err := adapter.List(context.Background(), models.CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "New", *products[0].Title)
	assert.Equal(t, "Mid", *products[1].Title)
	assert.Equal(t, "Old", *products[2].Title)
	assert.True(t, products[0].Price.Decimal.Equal(decimal.NewFromInt(20)))
	assert.Nil(t, fake.scans[0].FilterExpression)
}

func TestDynamoList_FiltersAndSearch(t *testing.T) {
	now := time.Now().UTC()
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{
		{item(t, "FIFA 26", now, 10), item(t, "Forza", now, 10)},
	}}
	adapter := NewDynamoAdapter(fake, "Products")
	platform, search := "PS5", "fifa"

	products, err := adapter.List(context.Background(), models.CatalogFilter{Platform: &platform, Search: &search, Sale: true})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "FIFA 26", *products[0].Title)

	in := fake.scans[0]
	require.NotNil(t, in.FilterExpression)
	assert.Equal(t, "#platform = :platform AND #sale = :true", *in.FilterExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "PS5"}, in.ExpressionAttributeValues[":platform"])
}

func TestDynamoList_EmptyIsNotNil(t *testing.T) {
	adapter := NewDynamoAdapter(&fakeDynamo{}, "Products")

	products, err := adapter.List(context.Background(), models.CatalogFilter{Preorder: true})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestDynamoList_ScanError(t *testing.T) {
	adapter := NewDynamoAdapter(&fakeDynamo{scanErr: errors.New("throttled")}, "Products")

	_, err := adapter.List(context.Background(), models.CatalogFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestDynamoCreate_AssignsIDAndDate(t *testing.T) {
	fake := &fakeDynamo{}
	adapter := NewDynamoAdapter(fake, "Products")
	title := "Tekken 8"
	p := &models.Product{Title: &title, Price: decimal.NewNullDecimal(decimal.RequireFromString("249.5"))}

	require.NoError(t, adapter.Create(context.Background(), p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.DateAdded.IsZero())

	require.Len(t, fake.puts, 1)
	var stored ddbProduct
	require.NoError(t, attributevalue.UnmarshalMap(fake.puts[0].Item, &stored))
	assert.Equal(t, p.ID.String(), stored.ID)
	require.NotNil(t, stored.Price)
	assert.Equal(t, 249.5, *stored.Price)
	assert.Nil(t, stored.PrevPrice)
}

func TestDynamoCreate_Error(t *testing.T) {
	adapter := NewDynamoAdapter(&fakeDynamo{putErr: errors.New("conditional check failed")}, "Products")

	err := adapter.Create(context.Background(), &models.Product{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conditional check failed")
}
