package sessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/timekeeper/internal/jwt"
	"github.com/sbilibin2017/timekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "timekeeper.sid"

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	}
	return r
}

func TestManager_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &models.Session{ID: "sid-1", UserID: "user-1"}

	tests := []struct {
		name      string
		cookie    string
		mockSetup func(store *MockStore, signer *MockSigner)
		wantUser  string
		wantFresh bool
		wantErr   bool
	}{
		{
			name:      "NoCookie",
			mockSetup: func(store *MockStore, signer *MockSigner) {},
			wantFresh: true,
		},
		{
			name:   "InvalidCookie",
			cookie: "garbage",
			mockSetup: func(store *MockStore, signer *MockSigner) {
				signer.EXPECT().GetSessionID(gomock.Any(), "garbage").Return("", jwt.ErrInvalidToken)
			},
			wantFresh: true,
		},
		{
			name:   "ExpiredRecord",
			cookie: "signed",
			mockSetup: func(store *MockStore, signer *MockSigner) {
				signer.EXPECT().GetSessionID(gomock.Any(), "signed").Return("sid-1", nil)
				store.EXPECT().Get(gomock.Any(), "sid-1").Return(nil, nil)
			},
			wantFresh: true,
		},
		{
			name:   "StoreError",
			cookie: "signed",
			mockSetup: func(store *MockStore, signer *MockSigner) {
				signer.EXPECT().GetSessionID(gomock.Any(), "signed").Return("sid-1", nil)
				store.EXPECT().Get(gomock.Any(), "sid-1").Return(nil, errors.New("redis down"))
			},
			wantErr: true,
		},
		{
			name:   "Existing",
			cookie: "signed",
			mockSetup: func(store *MockStore, signer *MockSigner) {
				signer.EXPECT().GetSessionID(gomock.Any(), "signed").Return("sid-1", nil)
				store.EXPECT().Get(gomock.Any(), "sid-1").Return(stored, nil)
			},
			wantUser: "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockStore(ctrl)
			signer := NewMockSigner(ctrl)
			tt.mockSetup(store, signer)

			m := NewManager(store, signer, cookieName, time.Hour)
			s, err := m.Load(requestWithCookie(tt.cookie))

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantUser, s.UserID)
			if tt.wantFresh {
				assert.NotEmpty(t, s.ID)
				assert.False(t, s.IsAuthenticated())
			} else {
				assert.Equal(t, "sid-1", s.ID)
			}
		})
	}
}

func TestManager_Save(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := NewMockSigner(ctrl)
	m := NewManager(store, signer, cookieName, time.Hour)

	s := models.NewSession("sid-1")
	store.EXPECT().Save(gomock.Any(), s).Return(nil)
	signer.EXPECT().Generate(gomock.Any(), "sid-1").Return("signed", nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), w, s))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, cookieName, c.Name)
	assert.Equal(t, "signed", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestManager_SaveStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := NewMockSigner(ctrl)
	m := NewManager(store, signer, cookieName, time.Hour)

	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	w := httptest.NewRecorder()
	assert.Error(t, m.Save(context.Background(), w, models.NewSession("sid-1")))
	assert.Empty(t, w.Result().Cookies())
}

func TestManager_LogInRotatesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := NewMockSigner(ctrl)
	m := NewManager(store, signer, cookieName, time.Hour)

	s := models.NewSession("old-sid")
	s.AddFlash(models.FlashSuccess, "Success! Your password has been changed.")

	gomock.InOrder(
		store.EXPECT().Save(gomock.Any(), s).Return(nil),
		signer.EXPECT().Generate(gomock.Any(), gomock.Not("old-sid")).Return("signed", nil),
		store.EXPECT().Delete(gomock.Any(), "old-sid").Return(nil),
	)

	w := httptest.NewRecorder()
	require.NoError(t, m.LogIn(context.Background(), w, s, "user-1"))

	assert.NotEqual(t, "old-sid", s.ID)
	assert.Equal(t, "user-1", s.UserID)
	assert.Len(t, s.Flashes[models.FlashSuccess], 1)
}

func TestManager_LogOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := NewMockSigner(ctrl)
	m := NewManager(store, signer, cookieName, time.Hour)

	s := &models.Session{ID: "sid-1", UserID: "user-1"}
	store.EXPECT().Delete(gomock.Any(), "sid-1").Return(nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.LogOut(context.Background(), w, s))

	assert.False(t, s.IsAuthenticated())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestManager_LogOut_DeleteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := NewMockSigner(ctrl)
	m := NewManager(store, signer, cookieName, time.Hour)

	s := &models.Session{ID: "sid-1", UserID: "user-1"}
	storeErr := errors.New("redis down")
	store.EXPECT().Delete(gomock.Any(), "sid-1").Return(storeErr)

	w := httptest.NewRecorder()
	err := m.LogOut(context.Background(), w, s)
	assert.ErrorIs(t, err, storeErr)

	assert.False(t, s.IsAuthenticated())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestManager_RoundTripWithSignedCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMockStore(ctrl)
	signer := jwt.New(jwt.WithSecretKey("keyboard cat"), jwt.WithExpiration(time.Hour))
	m := NewManager(store, signer, cookieName, time.Hour)

	s := &models.Session{ID: "sid-1", UserID: "user-1"}
	store.EXPECT().Save(gomock.Any(), s).Return(nil)
	store.EXPECT().Get(gomock.Any(), "sid-1").Return(s, nil)

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), w, s))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	loaded, err := m.Load(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.UserID)
}
