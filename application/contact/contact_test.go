package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appcontact "github.com/raigadbazaar/marketplace/application/contact"
	"github.com/raigadbazaar/marketplace/constant"
	contactmocks "github.com/raigadbazaar/marketplace/mocks/application/contact"
	propertymocks "github.com/raigadbazaar/marketplace/mocks/repository/property"
	usermocks "github.com/raigadbazaar/marketplace/mocks/repository/user"
	"github.com/raigadbazaar/marketplace/model"
	"github.com/raigadbazaar/marketplace/thirdparty/rabbitmq"
	cerr "github.com/raigadbazaar/marketplace/utils/errors"
	"github.com/stretchr/testify/mock"
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestContactApp_ContactOwner(t *testing.T) {
	type fields struct {
		propertyRepo *propertymocks.PropertyRepository
		userRepo     *usermocks.UserRepository
		publisher    *contactmocks.Publisher
	}
	type args struct {
		ctx context.Context
		req *model.ContactRequest
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
			name: "success: enquiry on available property",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 10,
					BuyerID:    5,
					Message:    "Is the price negotiable?",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{
						ID:    5,
						Name:  "Test Buyer",
						Phone: "081234567890",
						Role:  constant.UserRoleBuyer,
					}, nil).
					Once()

				f.propertyRepo.
					On("GetByID", mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:         10,
						Title:      "2BHK near station",
						OwnerID:    2,
						OwnerPhone: "089876543210",
						Status:     constant.PropertyStatusAvailable,
					}, nil).
					Once()

				f.publisher.
					On("PublishContactNotification", mock.MatchedBy(func(msg rabbitmq.ContactNotificationMessage) bool {
						return msg.PropertyID == 10 &&
							msg.BuyerID == 5 &&
							msg.OwnerID == 2 &&
							msg.Message == "Is the price negotiable?"
					})).
					Return(nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "success: enquiry still allowed while locked by another buyer",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 10,
					BuyerID:    5,
					Message:    "Still interested if it frees up",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.propertyRepo.
					On("GetByID", mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:       10,
						OwnerID:  2,
						Status:   constant.PropertyStatusLocked,
						LockedBy: uint64Ptr(7),
						LockedAt: timePtr(time.Now()),
					}, nil).
					Once()

				f.publisher.
					On("PublishContactNotification", mock.AnythingOfType("rabbitmq.ContactNotificationMessage")).
					Return(nil).
					Once()
			},
			wantErr: false,
		},
		{
			name: "error: sold property rejects contact",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 10,
					BuyerID:    5,
					Message:    "Is it still for sale?",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.propertyRepo.
					On("GetByID", mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusSold,
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrPropertySold,
		},
		{
			name: "error: owner cannot send enquiries",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 10,
					BuyerID:    2,
					Message:    "hello",
				},
			},
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
			name: "error: property not found",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 404,
					BuyerID:    5,
					Message:    "hello",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.propertyRepo.
					On("GetByID", mock.Anything, uint64(404)).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: publish failure surfaces as internal",
			fields: fields{
				propertyRepo: propertymocks.NewPropertyRepository(t),
				userRepo:     usermocks.NewUserRepository(t),
				publisher:    contactmocks.NewPublisher(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.ContactRequest{
					PropertyID: 10,
					BuyerID:    5,
					Message:    "hello",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 5}).
					Return(&model.UserEntity{ID: 5, Role: constant.UserRoleBuyer}, nil).
					Once()

				f.propertyRepo.
					On("GetByID", mock.Anything, uint64(10)).
					Return(&model.PropertyEntity{
						ID:      10,
						OwnerID: 2,
						Status:  constant.PropertyStatusAvailable,
					}, nil).
					Once()

				f.publisher.
					On("PublishContactNotification", mock.AnythingOfType("rabbitmq.ContactNotificationMessage")).
					Return(errors.New("broker down")).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := appcontact.NewContactApp(tt.fields.propertyRepo, tt.fields.userRepo, tt.fields.publisher)

			got, err := app.ContactOwner(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ContactOwner() error = %v, wantErr %v", err, tt.wantErr)
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

			if got.PropertyID != tt.args.req.PropertyID {
				t.Fatalf("ContactOwner() propertyID = %d, want %d", got.PropertyID, tt.args.req.PropertyID)
			}
			if got.Detail == "" {
				t.Fatal("ContactOwner() detail should not be empty")
			}
		})
	}
}
