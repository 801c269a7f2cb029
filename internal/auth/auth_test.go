package auth

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkariuki/dealdrop/internal/store"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewLocalProvider(st, "test-secret", 100)
}

func TestSignUpThenSignIn(t *testing.T) {
	p := newTestProvider(t)

	sess, err := p.SignUp("vendor@example.com", "hunter2hunter2", map[string]string{"name": "Wanjiru"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "vendor@example.com", sess.Email)

	require.NoError(t, p.SignOut())
	_, ok := p.Session()
	assert.False(t, ok, "session should be gone after sign-out")

	sess, err = p.SignIn("vendor@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", sess.Email)

	got, ok := p.Session()
	require.True(t, ok)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestSignInWrongPassword(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.SignUp("a@b.co", "correct-horse", nil)
	require.NoError(t, err)
	require.NoError(t, p.SignOut())

	_, err = p.SignIn("a@b.co", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn("nobody@b.co", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email must look like a bad password")
}

func TestDuplicateEmail(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.SignUp("dup@b.co", "password-one", nil)
	require.NoError(t, err)

	_, err = p.SignUp("dup@b.co", "password-two", nil)
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestSignInRateLimited(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	p := NewLocalProvider(st, "test-secret", 3)
	_, err = p.SignUp("limited@b.co", "real-password", nil)
	require.NoError(t, err)

	// Burn the burst with bad passwords, then the limiter kicks in.
	for i := 0; i < 3; i++ {
		_, err = p.SignIn("limited@b.co", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = p.SignIn("limited@b.co", "real-password")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestRestoreRoundTrip(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	p := NewLocalProvider(st, "test-secret", 100)
	sess, err := p.SignUp("restore@b.co", "some-password", nil)
	require.NoError(t, err)

	// Fresh provider, same secret: the persisted token reopens the session.
	p2 := NewLocalProvider(st, "test-secret", 100)
	require.NoError(t, p2.Restore(sess.Token))
	got, ok := p2.Session()
	require.True(t, ok)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, "restore@b.co", got.Email)

	// Wrong secret refuses the token.
	p3 := NewLocalProvider(st, "other-secret", 100)
	assert.Error(t, p3.Restore(sess.Token))
}

func TestOAuthUnavailable(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.SignInWithOAuth("google")
	assert.ErrorIs(t, err, ErrOAuthUnavailable)
}

func TestConcurrentProviderAccess(t *testing.T) {
	p := newTestProvider(t)

	ctx := NewSessionContext(p)
	ctx.Subscribe()
	t.Cleanup(ctx.Dispose)

	// Sign-ups run on command goroutines while the UI turn reads the
	// session. Run with -race to make this meaningful.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := p.SignUp(fmt.Sprintf("user%d@example.com", i), "some-password", nil)
			assert.NoError(t, err)
			p.Session()
			ctx.SignedIn()
		}(i)
	}
	wg.Wait()

	assert.True(t, ctx.SignedIn())
}

func TestSessionContextLifecycle(t *testing.T) {
	p := newTestProvider(t)

	ctx := NewSessionContext(p)
	assert.Equal(t, ContextInit, ctx.State())
	assert.False(t, ctx.SignedIn())

	ctx.Subscribe()
	assert.Equal(t, ContextSubscribed, ctx.State())
	assert.False(t, ctx.SignedIn())

	_, err := p.SignUp("ctx@b.co", "some-password", nil)
	require.NoError(t, err)
	assert.True(t, ctx.SignedIn())

	_, email, ok := ctx.User()
	require.True(t, ok)
	assert.Equal(t, "ctx@b.co", email)

	require.NoError(t, p.SignOut())
	assert.False(t, ctx.SignedIn())

	ctx.Dispose()
	assert.Equal(t, ContextDisposed, ctx.State())
	assert.False(t, ctx.SignedIn())

	// A disposed context no longer observes provider changes.
	_, err = p.SignIn("ctx@b.co", "some-password")
	require.NoError(t, err)
	assert.False(t, ctx.SignedIn())
}
