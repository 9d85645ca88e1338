package property

import (
	"context"

	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/model"
	propertyrepo "github.com/raigadbazaar/marketplace/repository/property"
	userrepo "github.com/raigadbazaar/marketplace/repository/user"
	"github.com/raigadbazaar/marketplace/utils/errors"
	"github.com/raigadbazaar/marketplace/utils/logger"
	"go.uber.org/zap"
)

type PropertyApp interface {
	CreateProperty(ctx context.Context, req *model.CreatePropertyRequest) (*model.PropertyEntity, error)
	GetProperty(ctx context.Context, id uint64) (*model.PropertyEntity, error)
	SearchProperties(ctx context.Context, filter *model.PropertyFilter) ([]model.PropertyEntity, error)
}

type propertyAppImpl struct {
	propertyRepo propertyrepo.PropertyRepository
	userRepo     userrepo.UserRepository
}

func NewPropertyApp(propertyRepo propertyrepo.PropertyRepository, userRepo userrepo.UserRepository) PropertyApp {
	return &propertyAppImpl{propertyRepo: propertyRepo, userRepo: userRepo}
}

func (s *propertyAppImpl) CreateProperty(ctx context.Context, req *model.CreatePropertyRequest) (*model.PropertyEntity, error) {
	// Only the owner role may list properties
	owner, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.OwnerID})
	if err != nil {
		logger.Error("[CreateProperty] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if owner == nil || owner.Role != constant.UserRoleOwner {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	images := model.ImageList(req.Images)
	if images == nil {
		images = model.ImageList{}
	}

	entity := &model.PropertyEntity{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		SizeSqft:    req.SizeSqft,
		Images:      images,
		OwnerID:     owner.ID,
		OwnerName:   req.OwnerName,
		OwnerPhone:  req.OwnerPhone,
		Status:      constant.PropertyStatusAvailable,
	}

	entity, err = s.propertyRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateProperty] err propertyRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return entity, nil
}

func (s *propertyAppImpl) GetProperty(ctx context.Context, id uint64) (*model.PropertyEntity, error) {
	entity, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProperty] err propertyRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if entity == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return entity, nil
}

func (s *propertyAppImpl) SearchProperties(ctx context.Context, filter *model.PropertyFilter) ([]model.PropertyEntity, error) {
	items, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[SearchProperties] err propertyRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}
