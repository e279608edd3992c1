package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSessionMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("attaches session", func(t *testing.T) {
		loader := NewMockSessionLoader(ctrl)
		s := models.NewSession("sid")
		loader.EXPECT().Load(gomock.Any()).Return(s, nil)

		var got *models.Session
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = GetSessionFromContext(r.Context())
		})

		rr := httptest.NewRecorder()
		SessionMiddleware(loader)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Same(t, s, got)
	})

	t.Run("store failure", func(t *testing.T) {
		loader := NewMockSessionLoader(ctrl)
		loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("redis down"))

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		rr := httptest.NewRecorder()
		SessionMiddleware(loader)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, nextCalled)
	})
}
