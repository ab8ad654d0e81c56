package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/domain"
	"github.com/marcos-nsantos/user-management-backend/internal/domain/entity"
	"github.com/marcos-nsantos/user-management-backend/internal/mocks"
	"github.com/marcos-nsantos/user-management-backend/internal/usecase/user"
)

func setupRouter(h *handler.UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", h.Create)
	r.POST("/users/login", h.Login)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
	r.PUT("/users/:id", h.Update)
	r.DELETE("/users/:id", h.Delete)
	return r
}

func newTestHandler(t *testing.T) (*mocks.MockUserService, *gin.Engine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	userSvc := mocks.NewMockUserService(ctrl)
	return userSvc, setupRouter(handler.NewUserHandler(userSvc))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func ana() *entity.User {
	return &entity.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: "$2a$10$secret"}
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("creates user without exposing the hash", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Create(gomock.Any(), user.CreateInput{
			Name:     "Ana",
			Email:    "ana@x.com",
			Password: "Passw0rd!",
		}).Return(ana(), nil)

		w := doRequest(router, http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com","password":"Passw0rd!"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		assert.Equal(t, float64(1), resp["id"])
		assert.Equal(t, "ana@x.com", resp["email"])
		assert.NotContains(t, resp, "password")
		assert.NotContains(t, resp, "password_hash")
		assert.NotContains(t, w.Body.String(), "$2a$10$secret")
	})

	t.Run("returns conflict for existing email", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEmailTaken)

		w := doRequest(router, http.MethodPost, "/users", `{"name":"Bea","email":"ana@x.com","password":"Other1$23"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "EMAIL_TAKEN", decodeBody(t, w)["code"])
	})

	t.Run("returns bad request for weak password", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrWeakPassword)

		w := doRequest(router, http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com","password":"password"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "WEAK_PASSWORD", decodeBody(t, w)["code"])
	})

	t.Run("returns internal error for creation failure", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: %w", domain.ErrCreationFailed, domain.ErrPersistence))

		w := doRequest(router, http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com","password":"Passw0rd!"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("returns validation error for invalid input", func(t *testing.T) {
		_, router := newTestHandler(t)

		w := doRequest(router, http.MethodPost, "/users", `{"name":"","email":"invalid","password":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["code"])
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("logs in successfully", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Login(gomock.Any(), user.LoginInput{Email: "ana@x.com", Password: "Passw0rd!"}).Return(ana(), nil)

		w := doRequest(router, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"Passw0rd!"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ana", decodeBody(t, w)["name"])
	})

	t.Run("wrong password and unknown email get identical responses", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Login(gomock.Any(), user.LoginInput{Email: "ana@x.com", Password: "wrong"}).Return(nil, nil)
		userSvc.EXPECT().Login(gomock.Any(), user.LoginInput{Email: "unknown@x.com", Password: "wrong"}).Return(nil, nil)

		wrong := doRequest(router, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"wrong"}`)
		unknown := doRequest(router, http.MethodPost, "/users/login", `{"email":"unknown@x.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("returns internal error on storage failure", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, domain.ErrPersistence)

		w := doRequest(router, http.MethodPost, "/users/login", `{"email":"ana@x.com","password":"Passw0rd!"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	t.Run("lists profiles", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().List(gomock.Any()).Return([]entity.User{*ana(), {ID: 2, Name: "Bea", Email: "bea@x.com"}}, nil)

		w := doRequest(router, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Users []map[string]any `json:"users"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 2)
		assert.Equal(t, "Bea", resp.Users[1]["name"])
		assert.NotContains(t, w.Body.String(), "$2a$10$secret")
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().List(gomock.Any()).Return([]entity.User{}, nil)

		w := doRequest(router, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[]}`, w.Body.String())
	})

	t.Run("returns internal error on failure", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().List(gomock.Any()).Return(nil, domain.ErrPersistence)

		w := doRequest(router, http.MethodGet, "/users", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("returns user", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().GetByID(gomock.Any(), int64(1)).Return(ana(), nil)

		w := doRequest(router, http.MethodGet, "/users/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana@x.com", decodeBody(t, w)["email"])
	})

	t.Run("returns not found for absent user", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, nil)

		w := doRequest(router, http.MethodGet, "/users/1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody(t, w)["code"])
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		_, router := newTestHandler(t)

		for _, id := range []string{"abc", "0", "-3"} {
			w := doRequest(router, http.MethodGet, "/users/"+id, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, id)
		}
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("updates supplied fields only", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		updated := ana()
		updated.Name = "Ana Maria"
		userSvc.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ any, _ int64, input user.UpdateInput) (*entity.User, error) {
				require.NotNil(t, input.Name)
				assert.Equal(t, "Ana Maria", *input.Name)
				assert.Nil(t, input.Email)
				assert.Nil(t, input.Password)
				return updated, nil
			})

		w := doRequest(router, http.MethodPut, "/users/1", `{"name":"Ana Maria"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ana Maria", decodeBody(t, w)["name"])
	})

	t.Run("returns not found for absent user", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Update(gomock.Any(), int64(9), gomock.Any()).Return(nil, nil)

		w := doRequest(router, http.MethodPut, "/users/9", `{"name":"Nobody"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns bad request for empty update", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Update(gomock.Any(), int64(1), user.UpdateInput{}).Return(nil, domain.ErrNoFieldsToUpdate)

		w := doRequest(router, http.MethodPut, "/users/1", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns conflict for taken email", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).Return(nil, domain.ErrEmailTaken)

		w := doRequest(router, http.MethodPut, "/users/1", `{"email":"bea@x.com"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("returns validation error for malformed email", func(t *testing.T) {
		_, router := newTestHandler(t)

		w := doRequest(router, http.MethodPut, "/users/1", `{"email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("deletes user", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Delete(gomock.Any(), int64(1)).Return(true, nil)

		w := doRequest(router, http.MethodDelete, "/users/1", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("returns not found when nothing was removed", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, nil)

		w := doRequest(router, http.MethodDelete, "/users/1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns internal error on failure", func(t *testing.T) {
		userSvc, router := newTestHandler(t)

		userSvc.EXPECT().Delete(gomock.Any(), int64(1)).Return(false, domain.ErrPersistence)

		w := doRequest(router, http.MethodDelete, "/users/1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
