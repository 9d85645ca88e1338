package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	contactapp "github.com/raigadbazaar/marketplace/application/contact"
	lockapp "github.com/raigadbazaar/marketplace/application/lock"
	propertyapp "github.com/raigadbazaar/marketplace/application/property"
	userapp "github.com/raigadbazaar/marketplace/application/user"
	"github.com/raigadbazaar/marketplace/constant"
	"github.com/raigadbazaar/marketplace/model"
	utilsContext "github.com/raigadbazaar/marketplace/utils/context"
	"github.com/raigadbazaar/marketplace/utils/errors"
	validatorx "github.com/raigadbazaar/marketplace/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	PropertyApp propertyapp.PropertyApp
	LockApp     lockapp.LockApp
	ContactApp  contactapp.ContactApp
}

func NewTransport(UserApp userapp.UserApp, PropertyApp propertyapp.PropertyApp, LockApp lockapp.LockApp, ContactApp contactapp.ContactApp, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		UserApp:     UserApp,
		PropertyApp: PropertyApp,
		LockApp:     LockApp,
		ContactApp:  ContactApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	mux.HandleFunc("/auth/signup", rh.Signup).Methods(http.MethodPost)
	mux.HandleFunc("/auth/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/properties", rh.ListProperties).Methods(http.MethodGet)
	mux.HandleFunc("/properties/{id:[0-9]+}", rh.GetProperty).Methods(http.MethodGet)

	// protected routes
	mux.HandleFunc("/properties", rh.CreateProperty).Methods(http.MethodPost)
	mux.HandleFunc("/properties/contact", rh.Contact).Methods(http.MethodPost)
	mux.HandleFunc("/properties/lock", rh.Lock).Methods(http.MethodPost)
	mux.HandleFunc("/properties/release", rh.Release).Methods(http.MethodPost)
	mux.HandleFunc("/properties/mark-sold", rh.MarkSold).Methods(http.MethodPost)

	// internal routes (service API key, used by the lock expiration consumer)
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/property/{id:[0-9]+}/release-expired", rh.ReleaseExpired).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(UserApp))

	return mux
}

// Signup handler
// @Summary Create account
// @Description Register a buyer or owner account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Signup Request"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (s *RestHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Signup(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login
// @Description Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListProperties handler
// @Summary List and search properties
// @Description Filter by free-text query over title/location and by status
// @Tags Property
// @Produce json
// @Param q query string false "case-insensitive substring match on title and location"
// @Param status query string false "available, locked or sold"
// @Success 200 {array} model.PropertyEntity
// @Failure 400 {object} ErrorResponse
// @Router /properties [get]
func (s *RestHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := &model.PropertyFilter{
		Query: r.URL.Query().Get("q"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		switch constant.PropertyStatus(status) {
		case constant.PropertyStatusAvailable, constant.PropertyStatusLocked, constant.PropertyStatusSold:
			filter.Status = constant.PropertyStatus(status)
		default:
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
	}

	res, err := s.PropertyApp.SearchProperties(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProperty handler
// @Summary Get a property
// @Tags Property
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} model.PropertyEntity
// @Failure 404 {object} ErrorResponse
// @Router /properties/{id} [get]
func (s *RestHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PropertyApp.GetProperty(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProperty handler
// @Summary List a new property
// @Description Owners create listings; status starts as available
// @Tags Property
// @Accept json
// @Produce json
// @Param request body model.CreatePropertyRequest true "Create Request"
// @Success 200 {object} model.PropertyEntity
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties [post]
func (s *RestHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	// The echoed owner_id must be the session user
	if !matchesSessionUser(ctx, req.OwnerID) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	res, err := s.PropertyApp.CreateProperty(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Contact handler
// @Summary Contact the owner of a property
// @Description Dispatches a buyer enquiry; valid while the property is not sold
// @Tags Property
// @Accept json
// @Produce json
// @Param request body model.ContactRequest true "Contact Request"
// @Success 200 {object} model.ContactResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties/contact [post]
func (s *RestHandler) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if !matchesSessionUser(ctx, req.BuyerID) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	res, err := s.ContactApp.ContactOwner(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Lock handler
// @Summary Lock a property for a buyer
// @Description Grants exclusive priority on an available property; losers of the race get 409
// @Tags Property
// @Accept json
// @Produce json
// @Param request body model.LockRequest true "Lock Request"
// @Success 200 {object} model.LockResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties/lock [post]
func (s *RestHandler) Lock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if !matchesSessionUser(ctx, req.BuyerID) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	res, err := s.LockApp.Lock(ctx, req.PropertyID, req.BuyerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Release handler
// @Summary Release a locked property
// @Description Owner reverts a lock; releasing an available property is a no-op
// @Tags Property
// @Accept json
// @Produce json
// @Param request body model.ReleaseRequest true "Release Request"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties/release [post]
func (s *RestHandler) Release(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if !matchesSessionUser(ctx, req.OwnerID) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	res, err := s.LockApp.Release(ctx, req.PropertyID, req.OwnerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// MarkSold handler
// @Summary Mark a property as sold
// @Description Owner finalizes a sale from available or locked; sold is terminal
// @Tags Property
// @Accept json
// @Produce json
// @Param request body model.MarkSoldRequest true "Mark Sold Request"
// @Success 200 {object} model.StatusResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /properties/mark-sold [post]
func (s *RestHandler) MarkSold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.MarkSoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if !matchesSessionUser(ctx, req.OwnerID) {
		writeError(w, errors.SetCustomError(constant.ErrForbidden))
		return
	}

	res, err := s.LockApp.MarkSold(ctx, req.PropertyID, req.OwnerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReleaseExpired handler for the lock expiration consumer
func (s *RestHandler) ReleaseExpired(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.ReleaseExpiredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.LockApp.ReleaseExpired(ctx, id, req.BuyerID, req.LockedAt); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, model.StatusResponse{PropertyID: id, Status: constant.PropertyStatusAvailable})
}

// matchesSessionUser checks the client-echoed id against the verified session
func matchesSessionUser(ctx context.Context, claimed uint64) bool {
	userID, ok := utilsContext.GetUserID(ctx)
	return ok && userID == claimed
}
