package lock

import (
	"context"
	"time"

	"github.com/raigadbazaar/marketplace/cmd/config"
	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/model"
	propertyrepo "github.com/raigadbazaar/marketplace/repository/property"
	txrepo "github.com/raigadbazaar/marketplace/repository/tx"
	userrepo "github.com/raigadbazaar/marketplace/repository/user"
	"github.com/raigadbazaar/marketplace/thirdparty/rabbitmq"
	"github.com/raigadbazaar/marketplace/utils/errors"
	"github.com/raigadbazaar/marketplace/utils/logger"
	"go.uber.org/zap"
)

// LockApp applies property status transitions. All three mutating
// transitions read the row FOR UPDATE inside a transaction, so concurrent
// callers on the same property are serialized by the database and the first
// to arrive wins; the rest observe the committed state and fail with a
// conflict instead of overwriting it.
type LockApp interface {
	Lock(ctx context.Context, propertyID, buyerID uint64) (*model.LockResponse, error)
	Release(ctx context.Context, propertyID, actorID uint64) (*model.StatusResponse, error)
	ReleaseExpired(ctx context.Context, propertyID, buyerID uint64, lockedAt time.Time) error
	MarkSold(ctx context.Context, propertyID, actorID uint64) (*model.StatusResponse, error)
}

// Publisher is the slice of the rabbitmq publisher the engine needs.
type Publisher interface {
	PublishLockExpiration(msg rabbitmq.LockExpirationMessage) error
}

type lockAppImpl struct {
	config       *config.Config
	txRepo       txrepo.TxRepository
	propertyRepo propertyrepo.PropertyRepository
	userRepo     userrepo.UserRepository
	publisher    Publisher
}

func NewLockApp(config *config.Config, txRepo txrepo.TxRepository, propertyRepo propertyrepo.PropertyRepository, userRepo userrepo.UserRepository, publisher Publisher) LockApp {
	return &lockAppImpl{
		config:       config,
		txRepo:       txRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		publisher:    publisher,
	}
}

func (s *lockAppImpl) Lock(ctx context.Context, propertyID, buyerID uint64) (*model.LockResponse, error) {
	buyer, err := s.userRepo.Get(ctx, &model.UserFilter{ID: buyerID})
	if err != nil {
		logger.Error("[Lock] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if buyer == nil || buyer.Role != constant.UserRoleBuyer {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Lock] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	prop, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyID)
	if err != nil {
		logger.Error("[Lock] get property for update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if prop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Guard: only an available property can be locked. A concurrent winner
	// has already committed locked/sold by the time we hold the row lock.
	if prop.Status != constant.PropertyStatusAvailable {
		return nil, errors.SetCustomError(constant.ErrPropertyUnavailable)
	}

	now := time.Now()
	if err := s.propertyRepo.UpdateStatusTx(ctx, tx, propertyID, constant.PropertyStatusLocked, &buyerID, &now); err != nil {
		logger.Error("[Lock] update status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Lock] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	expiresAt := now.Add(s.config.Lock.Expiration)
	// Schedule the expiry sweep; the lock stands even if scheduling fails
	if s.publisher != nil {
		msg := rabbitmq.LockExpirationMessage{
			PropertyID: propertyID,
			BuyerID:    buyerID,
			LockedAt:   now,
			ExpiresAt:  expiresAt,
		}
		if err := s.publisher.PublishLockExpiration(msg); err != nil {
			logger.Error("[Lock] publish lock expiration", zap.String("error", err.Error()))
		}
	}

	return &model.LockResponse{
		PropertyID: propertyID,
		Status:     constant.PropertyStatusLocked,
		LockedBy:   buyerID,
		LockedAt:   now,
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *lockAppImpl) Release(ctx context.Context, propertyID, actorID uint64) (*model.StatusResponse, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Release] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	prop, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyID)
	if err != nil {
		logger.Error("[Release] get property for update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if prop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if prop.OwnerID != actorID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	switch prop.Status {
	case constant.PropertyStatusAvailable:
		// Releasing an unlocked property is a no-op, not an error
		return &model.StatusResponse{PropertyID: propertyID, Status: prop.Status}, nil
	case constant.PropertyStatusSold:
		return nil, errors.SetCustomError(constant.ErrPropertySold)
	}

	if err := s.propertyRepo.UpdateStatusTx(ctx, tx, propertyID, constant.PropertyStatusAvailable, nil, nil); err != nil {
		logger.Error("[Release] update status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Release] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return &model.StatusResponse{PropertyID: propertyID, Status: constant.PropertyStatusAvailable}, nil
}

// ReleaseExpired is the sweep path. It only reverts the exact lock the
// expiry was scheduled for: if the property was sold, released, or locked
// again by another buyer in the meantime it does nothing.
func (s *lockAppImpl) ReleaseExpired(ctx context.Context, propertyID, buyerID uint64, lockedAt time.Time) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReleaseExpired] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	prop, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyID)
	if err != nil {
		logger.Error("[ReleaseExpired] get property for update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if prop == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if prop.Status != constant.PropertyStatusLocked {
		return nil
	}
	if prop.LockedBy == nil || *prop.LockedBy != buyerID {
		return nil
	}
	if prop.LockedAt == nil || !prop.LockedAt.Equal(lockedAt) {
		return nil
	}

	if err := s.propertyRepo.UpdateStatusTx(ctx, tx, propertyID, constant.PropertyStatusAvailable, nil, nil); err != nil {
		logger.Error("[ReleaseExpired] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReleaseExpired] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	logger.Info("[ReleaseExpired] lock released",
		zap.Uint64("property_id", propertyID),
		zap.Uint64("buyer_id", buyerID))
	return nil
}

func (s *lockAppImpl) MarkSold(ctx context.Context, propertyID, actorID uint64) (*model.StatusResponse, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[MarkSold] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	prop, err := s.propertyRepo.GetForUpdateTx(ctx, tx, propertyID)
	if err != nil {
		logger.Error("[MarkSold] get property for update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if prop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if prop.OwnerID != actorID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	// sold is terminal
	if prop.Status == constant.PropertyStatusSold {
		return nil, errors.SetCustomError(constant.ErrPropertySold)
	}

	if err := s.propertyRepo.UpdateStatusTx(ctx, tx, propertyID, constant.PropertyStatusSold, nil, nil); err != nil {
		logger.Error("[MarkSold] update status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[MarkSold] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return &model.StatusResponse{PropertyID: propertyID, Status: constant.PropertyStatusSold}, nil
}
