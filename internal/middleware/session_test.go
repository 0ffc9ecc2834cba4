package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_email(t *testing.T) {
	assert := assert.New(t)

	d := newDeps(t, &fakeIdentifier{}, 0)
	ctx := d.sessionContext(t)

	assert.Equal("", d.sessions.Email(ctx))

	require.NoError(t, d.sessions.SetEmail(ctx, "a@b.com"))
	assert.Equal("a@b.com", d.sessions.Email(ctx))

	require.NoError(t, d.sessions.SetEmail(ctx, " u@x.com "))
	assert.Equal("u@x.com", d.sessions.Email(ctx))

	require.NoError(t, d.sessions.SetEmail(ctx, "   "))
	assert.Equal("", d.sessions.Email(ctx))

	session, err := d.sessions.Get(ctx)
	require.NoError(t, err)
	assert.False(session.Authenticated())
}

func TestSessionManager_bootstrappedAndFlash(t *testing.T) {
	assert := assert.New(t)

	d := newDeps(t, &fakeIdentifier{}, 0)
	ctx := d.sessionContext(t)

	_, err := d.sessions.Get(ctx)
	assert.ErrorIs(err, errSessionNotFound)
	assert.False(d.sessions.Bootstrapped(ctx))

	require.NoError(t, d.sessions.SetEmail(ctx, "a@b.com"))
	d.sessions.MarkBootstrapped(ctx)
	assert.True(d.sessions.Bootstrapped(ctx))
	assert.Equal("a@b.com", d.sessions.Email(ctx))

	d.sessions.Flash(ctx, "Added to cart")
	assert.Equal("Added to cart", d.sessions.PopFlash(ctx))
	assert.Equal("", d.sessions.PopFlash(ctx))
}

func TestSessionManager_persistsAcrossRequests(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	d := newDeps(t, &fakeIdentifier{}, 0)

	login := d.sessions.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		require.NoError(d.sessions.SetEmail(r.Context(), "a@b.com"))
	}))
	rr := serve(login, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := rr.Result().Cookies()
	require.Len(cookies, 1)
	assert.Equal("storefront_session", cookies[0].Name)
	assert.True(cookies[0].HttpOnly)

	var seen string
	read := d.sessions.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = d.sessions.Email(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])
	serve(read, req)

	assert.Equal("a@b.com", seen)
}
