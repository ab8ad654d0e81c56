package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/user-management-backend/internal/domain"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

type UserHandler struct {
	userSvc UserService
}

func NewUserHandler(userSvc UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account. The password must be 8 to 72 characters and mix letters, digits and one of @$!%*?&.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.CreateUserRequest	true	"Registration data"
//	@Success		201		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		409		{object}	httputil.ErrorResponse	"Email already registered"
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.Create(c.Request.Context(), user.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, response.UserFromEntity(u))
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Check an email and password pair. Unknown emails and wrong passwords get the same answer.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Login credentials"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		401		{object}	httputil.ErrorResponse	"Invalid credentials"
//	@Router			/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.Login(c.Request.Context(), user.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}
	if u == nil {
		httputil.HandleError(c, domain.ErrInvalidCredentials)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	response.UsersListResponse
//	@Failure	500	{object}	httputil.ErrorResponse
//	@Router		/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UsersFromEntities(users))
}

// Get godoc
//
//	@Summary	Get user by id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	response.UserResponse
//	@Failure	400	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	u, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}
	if u == nil {
		httputil.HandleError(c, apperror.NotFound("user"))
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Update godoc
//
//	@Summary		Update user
//	@Description	Change any of name, email and password. Omitted fields keep their value.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User ID"
//	@Param			request	body		request.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	response.UserResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		404		{object}	httputil.ErrorResponse
//	@Failure		409		{object}	httputil.ErrorResponse	"Email already registered"
//	@Router			/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.Update(c.Request.Context(), id, user.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}
	if u == nil {
		httputil.HandleError(c, apperror.NotFound("user"))
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Delete godoc
//
//	@Summary	Delete user
//	@Tags		users
//	@Param		id	path	int	true	"User ID"
//	@Success	204	"No content"
//	@Failure	400	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	deleted, err := h.userSvc.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}
	if !deleted {
		httputil.HandleError(c, apperror.NotFound("user"))
		return
	}

	httputil.NoContent(c)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return 0, false
	}
	return id, true
}
