package contact

import (
	"context"
	"time"

	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/model"
	propertyrepo "github.com/raigadbazaar/marketplace/repository/property"
	userrepo "github.com/raigadbazaar/marketplace/repository/user"
	"github.com/raigadbazaar/marketplace/thirdparty/rabbitmq"
	"github.com/raigadbazaar/marketplace/utils/errors"
	"github.com/raigadbazaar/marketplace/utils/logger"
	"go.uber.org/zap"
)

type ContactApp interface {
	ContactOwner(ctx context.Context, req *model.ContactRequest) (*model.ContactResponse, error)
}

// Publisher is the slice of the rabbitmq publisher the mediator needs.
type Publisher interface {
	PublishContactNotification(msg rabbitmq.ContactNotificationMessage) error
}

type contactAppImpl struct {
	propertyRepo propertyrepo.PropertyRepository
	userRepo     userrepo.UserRepository
	publisher    Publisher
}

func NewContactApp(propertyRepo propertyrepo.PropertyRepository, userRepo userrepo.UserRepository, publisher Publisher) ContactApp {
	return &contactAppImpl{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

// ContactOwner forwards a buyer enquiry to the owner's notification queue.
// It never touches property state and works whether the property is
// available or locked (by anyone); only sold properties reject contact.
func (s *contactAppImpl) ContactOwner(ctx context.Context, req *model.ContactRequest) (*model.ContactResponse, error) {
	buyer, err := s.userRepo.Get(ctx, &model.UserFilter{ID: req.BuyerID})
	if err != nil {
		logger.Error("[ContactOwner] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if buyer == nil || buyer.Role != constant.UserRoleBuyer {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	prop, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		logger.Error("[ContactOwner] err propertyRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if prop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if prop.Status == constant.PropertyStatusSold {
		return nil, errors.SetCustomError(constant.ErrPropertySold)
	}

	msg := rabbitmq.ContactNotificationMessage{
		PropertyID:    prop.ID,
		PropertyTitle: prop.Title,
		BuyerID:       buyer.ID,
		BuyerName:     buyer.Name,
		BuyerPhone:    buyer.Phone,
		OwnerID:       prop.OwnerID,
		OwnerPhone:    prop.OwnerPhone,
		Message:       req.Message,
		SentAt:        time.Now(),
	}
	if err := s.publisher.PublishContactNotification(msg); err != nil {
		logger.Error("[ContactOwner] publish contact notification", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	logger.Info("[ContactOwner] enquiry dispatched",
		zap.Uint64("property_id", prop.ID),
		zap.Uint64("buyer_id", buyer.ID))

	return &model.ContactResponse{
		PropertyID: prop.ID,
		Detail:     "owner has been notified",
	}, nil
}
