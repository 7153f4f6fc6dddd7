package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	apperrors "storefront-service/common/errors"
	"storefront-service/models"
	"storefront-service/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.CatalogFilter
	}{
		{"empty", "", models.CatalogFilter{}},
		{"platform and search", "platform=PS5&search=fifa", models.CatalogFilter{Platform: strp("PS5"), Search: strp("fifa")}},
		{"flags need literal true", "sale=1&preorder=yes", models.CatalogFilter{}},
		{"flags on", "sale=true&preorder=true", models.CatalogFilter{Sale: true, Preorder: true}},
		{"empty values are absent", "platform=&search=", models.CatalogFilter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseCatalogFilter(values))
		})
	}
}

func TestCatalogService_List(t *testing.T) {
	repo := new(MockProductRepo)
	svc := NewCatalogService(repo, nil)
	filter := models.CatalogFilter{Sale: true}
	want := []models.Product{{Title: strp("Halo")}}

	repo.On("List", mock.Anything, filter).Return(want, nil).Once()

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestCatalogService_ListEmptyIsNotAnError(t *testing.T) {
	repo := new(MockProductRepo)
	svc := NewCatalogService(repo, nil)

	repo.On("List", mock.Anything, models.CatalogFilter{}).Return(nil, nil).Once()

	got, err := svc.List(context.Background(), models.CatalogFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogService_ListFailure(t *testing.T) {
	repo := new(MockProductRepo)
	svc := NewCatalogService(repo, nil)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := svc.List(context.Background(), models.CatalogFilter{})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
	assert.Equal(t, "connection refused", apperrors.MessageOf(err))
}

func TestCatalogService_ListUnconfigured(t *testing.T) {
	svc := NewCatalogService(repository.UnconfiguredProductRepo{}, nil)

	_, err := svc.List(context.Background(), models.CatalogFilter{})
	assert.ErrorIs(t, err, repository.ErrStoreNotConfigured)
}
