package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/tiles-api/internal/application/usecase"
	"github.com/jhoicas/tiles-api/internal/domain/entity"
)

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *productRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type brandRepoMock struct{ mock.Mock }

func (m *brandRepoMock) Create(ctx context.Context, b *entity.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *brandRepoMock) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Brand)
	return b, args.Error(1)
}

func (m *brandRepoMock) Update(ctx context.Context, b *entity.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *brandRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.Brand, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.Brand)
	return list, args.Error(1)
}

func (m *brandRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type categoryRepoMock struct{ mock.Mock }

func (m *categoryRepoMock) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *categoryRepoMock) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Category)
	return c, args.Error(1)
}

func (m *categoryRepoMock) Update(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *categoryRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.Category)
	return list, args.Error(1)
}

func (m *categoryRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type locationRepoMock struct{ mock.Mock }

func (m *locationRepoMock) Create(ctx context.Context, l *entity.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *locationRepoMock) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.Location)
	return l, args.Error(1)
}

func (m *locationRepoMock) Update(ctx context.Context, l *entity.Location) error {
	return m.Called(ctx, l).Error(0)
}

func (m *locationRepoMock) List(ctx context.Context, locationType string, limit, offset int) ([]*entity.Location, error) {
	args := m.Called(ctx, locationType, limit, offset)
	list, _ := args.Get(0).([]*entity.Location)
	return list, args.Error(1)
}

func (m *locationRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type saleRepoMock struct{ mock.Mock }

func (m *saleRepoMock) Create(ctx context.Context, s *entity.Sale) error {
	return m.Called(ctx, s).Error(0)
}

func (m *saleRepoMock) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Sale)
	return s, args.Error(1)
}

func (m *saleRepoMock) List(ctx context.Context, locationID string, limit, offset int) ([]*entity.Sale, error) {
	args := m.Called(ctx, locationID, limit, offset)
	list, _ := args.Get(0).([]*entity.Sale)
	return list, args.Error(1)
}

func (m *saleRepoMock) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type pdfMock struct{ mock.Mock }

func (m *pdfMock) GenerateSalePDF(ctx context.Context, sale *entity.Sale, location *entity.Location, lines []usecase.SaleInvoiceLine) ([]byte, error) {
	args := m.Called(ctx, sale, location, lines)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
