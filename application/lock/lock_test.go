package lock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	applock "github.com/raigadbazaar/marketplace/application/lock"
	"github.com/raigadbazaar/marketplace/cmd/config"
	"github.com/raigadbazaar/marketplace/constant"
	propertymocks "github.com/raigadbazaar/marketplace/mocks/repository/property"
	txmocks "github.com/raigadbazaar/marketplace/mocks/repository/tx"
	usermocks "github.com/raigadbazaar/marketplace/mocks/repository/user"
	"github.com/raigadbazaar/marketplace/model"
	cerr "github.com/raigadbazaar/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Lock: config.LockConfig{Expiration: 48 * time.Hour},
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestLockApp_Lock(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		propertyRepo *propertymocks.PropertyRepository
		userRepo     *usermocks.UserRepository
	}
	type args struct {
		ctx        context.Context
		propertyID uint64
		buyerID    uint64
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: lock available property",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, buyerID: 5},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusAvailable,
					}, nil).
					Once()
				f.propertyRepo.
					On("UpdateStatusTx", mock.Anything, mock.Anything, uint64(10), constant.PropertyStatusLocked, mock.AnythingOfType("*uint64"), mock.AnythingOfType("*time.Time")).
					Return(nil).
					Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: non-buyer cannot lock",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, buyerID: 2},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 2}).
					Return(&model.UserEntity{ID: 2, Role: constant.UserRoleOwner}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name: "error: unknown buyer",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, buyerID: 99},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 99}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name: "error: property not found",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 404, buyerID: 5},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(404)).
					Return(nil, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: property already locked",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, buyerID: 5},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(7),
						LockedAt: timePtr(time.Now()),
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPropertyUnavailable,
		},
		{
			name: "error: property sold",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, buyerID: 5},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusSold,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPropertyUnavailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := applock.NewLockApp(testConfig(), tt.fields.txRepo, tt.fields.propertyRepo, tt.fields.userRepo, nil)

			got, err := app.Lock(tt.args.ctx, tt.args.propertyID, tt.args.buyerID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lock() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != constant.PropertyStatusLocked {
				t.Fatalf("Lock() status = %s, want %s", got.Status, constant.PropertyStatusLocked)
			}
			if got.LockedBy != tt.args.buyerID {
				t.Fatalf("Lock() lockedBy = %d, want %d", got.LockedBy, tt.args.buyerID)
			}
			if !got.ExpiresAt.After(got.LockedAt) {
				t.Fatal("Lock() expiresAt should be after lockedAt")
			}
		})
	}
}

func TestLockApp_Release(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		propertyRepo *propertymocks.PropertyRepository
		userRepo     *usermocks.UserRepository
	}
	type args struct {
		ctx        context.Context
		propertyID uint64
		actorID    uint64
	}
	tests := []struct {
		name       string
		fields     fields
		args       args
		mockCall   func(f fields)
		wantStatus constant.PropertyStatus
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name: "success: release locked property",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, actorID: 2},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(5),
						LockedAt: timePtr(time.Now()),
					}, nil).
					Once()
				f.propertyRepo.
					On("UpdateStatusTx", mock.Anything, mock.Anything, uint64(10), constant.PropertyStatusAvailable, (*uint64)(nil), (*time.Time)(nil)).
					Return(nil).
					Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantStatus: constant.PropertyStatusAvailable,
			wantErr:    false,
		},
		{
			name: "success: release available property is a no-op",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, actorID: 2},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusAvailable,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantStatus: constant.PropertyStatusAvailable,
			wantErr:    false,
		},
		{
			name: "error: release sold property",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, actorID: 2},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusSold,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPropertySold,
		},
		{
			name: "error: only the owner can release",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			args: args{ctx: context.Background(), propertyID: 10, actorID: 99},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusLocked,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := applock.NewLockApp(testConfig(), tt.fields.txRepo, tt.fields.propertyRepo, tt.fields.userRepo, nil)

			got, err := app.Release(tt.args.ctx, tt.args.propertyID, tt.args.actorID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Release() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != tt.wantStatus {
				t.Fatalf("Release() status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestLockApp_ReleaseExpired(t *testing.T) {
	lockedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	type fields struct {
		txRepo       *txmocks.TxRepository
		propertyRepo *propertymocks.PropertyRepository
		userRepo     *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		fields   fields
		mockCall func(f fields)
		buyerID  uint64
		lockedAt time.Time
		wantErr  bool
	}{
		{
			name: "success: releases the scheduled lock",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			buyerID:  5,
			lockedAt: lockedAt,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(5),
						LockedAt: timePtr(lockedAt),
					}, nil).
					Once()
				f.propertyRepo.
					On("UpdateStatusTx", mock.Anything, mock.Anything, uint64(10), constant.PropertyStatusAvailable, (*uint64)(nil), (*time.Time)(nil)).
					Return(nil).
					Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: no-op when relocked by another buyer",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			buyerID:  5,
			lockedAt: lockedAt,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(7),
						LockedAt: timePtr(time.Now()),
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: no-op when same buyer relocked later",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			buyerID:  5,
			lockedAt: lockedAt,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(5),
						LockedAt: timePtr(lockedAt.Add(time.Hour)),
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: no-op when property already sold",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			buyerID:  5,
			lockedAt: lockedAt,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusSold,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := applock.NewLockApp(testConfig(), tt.fields.txRepo, tt.fields.propertyRepo, tt.fields.userRepo, nil)

			err := app.ReleaseExpired(context.Background(), 10, tt.buyerID, tt.lockedAt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReleaseExpired() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLockApp_MarkSold(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		propertyRepo *propertymocks.PropertyRepository
		userRepo     *usermocks.UserRepository
	}
	tests := []struct {
		name     string
		fields   fields
		actorID  uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: sell available property",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			actorID: 2,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusAvailable,
					}, nil).
					Once()
				f.propertyRepo.
					On("UpdateStatusTx", mock.Anything, mock.Anything, uint64(10), constant.PropertyStatusSold, (*uint64)(nil), (*time.Time)(nil)).
					Return(nil).
					Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: sell locked property clears the lock",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			actorID: 2,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(5),
						LockedAt: timePtr(time.Now()),
					}, nil).
					Once()
				f.propertyRepo.
					On("UpdateStatusTx", mock.Anything, mock.Anything, uint64(10), constant.PropertyStatusSold, (*uint64)(nil), (*time.Time)(nil)).
					Return(nil).
					Once()
				f.txRepo.On("CommitTx", mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: sold is terminal",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			actorID: 2,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusSold,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrPropertySold,
		},
		{
			name: "error: only the owner can mark sold",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
			},
			actorID: 5,
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, nil).Once()
				f.propertyRepo.
					On("GetForUpdateTx", mock.Anything, mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusAvailable,
					}, nil).
					Once()
				f.txRepo.On("RollbackTx", mock.Anything).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := applock.NewLockApp(testConfig(), tt.fields.txRepo, tt.fields.propertyRepo, tt.fields.userRepo, nil)

			got, err := app.MarkSold(context.Background(), 10, tt.actorID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MarkSold() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != constant.PropertyStatusSold {
				t.Fatalf("MarkSold() status = %s, want %s", got.Status, constant.PropertyStatusSold)
			}
		})
	}
}

// propertyStore is an in-memory stand-in for the database used by the
// concurrency test. BeginTx takes the store mutex and Commit/Rollback
// release it, mirroring how a row lock serializes the real transactions.
type propertyStore struct {
	mu   sync.Mutex
	prop model.PropertyEntity
}

func (s *propertyStore) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	s.mu.Lock()
	return nil, nil
}

func (s *propertyStore) CommitTx(tx *sqlx.Tx) error {
	s.mu.Unlock()
	return nil
}

func (s *propertyStore) RollbackTx(tx *sqlx.Tx) error {
	s.mu.Unlock()
	return nil
}

func (s *propertyStore) Create(ctx context.Context, req *model.PropertyEntity) (*model.PropertyEntity, error) {
	return req, nil
}

func (s *propertyStore) GetByID(ctx context.Context, id uint64) (*model.PropertyEntity, error) {
	c := s.prop
	return &c, nil
}

func (s *propertyStore) List(ctx context.Context, filter *model.PropertyFilter) ([]model.PropertyEntity, error) {
	return []model.PropertyEntity{s.prop}, nil
}

func (s *propertyStore) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.PropertyEntity, error) {
	c := s.prop
	return &c, nil
}

func (s *propertyStore) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.PropertyStatus, lockedBy *uint64, lockedAt *time.Time) error {
	s.prop.Status = status
	s.prop.LockedBy = lockedBy
	s.prop.LockedAt = lockedAt
	return nil
}

func TestLockApp_Lock_Concurrent(t *testing.T) {
	store := &propertyStore{
		prop: model.PropertyEntity{
			ID:      10,
			OwnerID: 2,
			Status:  constant.PropertyStatusAvailable,
		},
	}

	userRepo := usermocks.NewUserRepository(t)
	userRepo.On("Get", mock.Anything, mock.AnythingOfType("*model.UserFilter")).
		Return(func(ctx context.Context, filter *model.UserFilter) *model.UserEntity {
			return &model.UserEntity{ID: filter.ID, Role: constant.UserRoleBuyer}
		}, nil)

	app := applock.NewLockApp(testConfig(), store, store, userRepo, nil)

	const buyers = 8
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = app.Lock(context.Background(), 10, uint64(i+1))
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		var ce cerr.CustomError
		if !errors.As(err, &ce) || ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrPropertyUnavailable] {
			t.Fatalf("unexpected error: %v", err)
		}
		conflicts++
	}

	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}
	if conflicts != buyers-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, buyers-1)
	}

	if store.prop.Status != constant.PropertyStatusLocked {
		t.Fatalf("final status = %s, want %s", store.prop.Status, constant.PropertyStatusLocked)
	}
	if store.prop.LockedBy == nil {
		t.Fatal("lockedBy should record the winner")
	}
	if errs[*store.prop.LockedBy-1] != nil {
		t.Fatal("recorded winner should be the caller whose Lock succeeded")
	}
}
