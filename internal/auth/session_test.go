package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shangan/internal/auth"
	"shangan/internal/model"
	"shangan/internal/storage/jsonstore"
)

func newSessions(t *testing.T) (*auth.Sessions, *jsonstore.Store, *model.User) {
	t.Helper()
	store, err := jsonstore.Open(t.TempDir(), "admin@shangan.ai", "admin123456")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	admin, err := store.GetUserByEmail(context.Background(), "admin@shangan.ai")
	require.NoError(t, err)
	require.NotNil(t, admin)

	return auth.NewSessions(store, auth.CookieConfig{Secret: "test-secret"}), store, admin
}

// requestWithCookies 把响应里下发的 cookie 带到下一个请求
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestIssueAndCurrentUser(t *testing.T) {
	sessions, _, admin := newSessions(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	sess, err := sessions.Issue(ctx, rec, admin.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(auth.SessionTTL), sess.ExpiresAt, time.Minute)

	user, err := sessions.CurrentUser(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, admin.ID, user.ID)

	// 无 cookie 视为未登录
	user, err = sessions.CurrentUser(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserExpiredSessionLazyDeleted(t *testing.T) {
	sessions, store, admin := newSessions(t)
	ctx := context.Background()

	// 直接造一个已过期的会话行，cookie 仍然验签通过
	sess, err := store.CreateSession(ctx, admin.ID, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, auth.SetSessionCookie(rec, auth.CookieConfig{Secret: "test-secret"}, sess.ID, sess.ExpiresAt))

	user, err := sessions.CurrentUser(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	assert.Nil(t, user)

	// 过期行已被惰性删除
	gone, err := store.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRevoke(t *testing.T) {
	sessions, store, admin := newSessions(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	sess, err := sessions.Issue(ctx, rec, admin.ID)
	require.NoError(t, err)

	req := requestWithCookies(rec)
	out := httptest.NewRecorder()
	require.NoError(t, sessions.Revoke(ctx, out, req))

	gone, err := store.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// 清空的 cookie 已下发
	cookies := out.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestRequireAccessAndAdmin(t *testing.T) {
	sessions, store, admin := newSessions(t)
	ctx := context.Background()

	member := &model.User{
		ID:        "user-1",
		Email:     "member@example.com",
		Role:      model.UserRoleUser,
		Entitled:  false,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(ctx, member))

	issue := func(userID string) *http.Request {
		rec := httptest.NewRecorder()
		_, err := sessions.Issue(ctx, rec, userID)
		require.NoError(t, err)
		return requestWithCookies(rec)
	}

	// 未登录
	_, err := sessions.RequireAccess(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)

	// 已登录未授权
	memberReq := issue(member.ID)
	_, err = sessions.RequireAccess(ctx, memberReq)
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = sessions.RequireAdmin(ctx, memberReq)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	// 授权后放行
	require.NoError(t, store.UpdateUserEntitled(ctx, member.ID, true))
	got, err := sessions.RequireAccess(ctx, issue(member.ID))
	require.NoError(t, err)
	assert.Equal(t, member.ID, got.ID)

	// 管理员双门槛都通过
	adminReq := issue(admin.ID)
	_, err = sessions.RequireAccess(ctx, adminReq)
	require.NoError(t, err)
	_, err = sessions.RequireAdmin(ctx, adminReq)
	require.NoError(t, err)
}
