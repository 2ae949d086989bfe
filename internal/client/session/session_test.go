package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophfood/internal/client/client"
	"github.com/dmitrijs2005/gophfood/internal/client/credentials"
	"github.com/dmitrijs2005/gophfood/internal/client/models"
	"github.com/dmitrijs2005/gophfood/internal/logging"
)

// ---- fake auth service ----

type fakeAuth struct {
	Authenticated bool
	AuthErr       error
	Email         string
	EmailErr      error

	LoginRet    *models.AuthResponse
	LoginErr    error
	RegisterRet *models.AuthResponse
	RegisterErr error
	LogoutErr   error
	RefreshErr  error
	CloseErr    error

	LoginCalls   int
	LogoutCalls  int
	RefreshCalls int
	CloseCalls   int
}

func (f *fakeAuth) Login(context.Context, string, string) (*models.AuthResponse, error) {
	f.LoginCalls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuth) Register(context.Context, string, string, string, string) (*models.AuthResponse, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAuth) Logout(context.Context) (*models.LogoutResponse, error) {
	f.LogoutCalls++
	if f.LogoutErr != nil {
		return nil, f.LogoutErr
	}
	return &models.LogoutResponse{Message: "Logged out successfully"}, nil
}

func (f *fakeAuth) Refresh(context.Context) (*models.TokenPair, error) {
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	return &models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}, nil
}

func (f *fakeAuth) IsAuthenticated(context.Context) (bool, error) { return f.Authenticated, f.AuthErr }
func (f *fakeAuth) UserEmail(context.Context) (string, error)     { return f.Email, f.EmailErr }

func (f *fakeAuth) TokenInfo(context.Context) (*credentials.TokenInfo, error) {
	return nil, credentials.ErrNoCredentials
}

func (f *fakeAuth) Ping(context.Context) error { return nil }

func (f *fakeAuth) Close() error {
	f.CloseCalls++
	return f.CloseErr
}

// recorder captures every state published to subscribers.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder) loadingFlags() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s.IsLoading)
	}
	return out
}

var janeResp = &models.AuthResponse{
	AccessToken: "A1", RefreshToken: "R1",
	Email: "user@example.com", FirstName: "Jane", LastName: "Doe",
}

func signedIn(t *testing.T, fa *fakeAuth) *Context {
	t.Helper()
	fa.LoginRet = janeResp
	c := New(fa, logging.Discard())
	require.NoError(t, c.Login(context.Background(), "user@example.com", "secret1"))
	return c
}

// ---- tests ----

func TestNew_InitialState(t *testing.T) {
	c := New(&fakeAuth{}, logging.Discard())
	assert.Equal(t, State{IsLoading: true}, c.State())
}

func TestStart_RestoresMinimalUser(t *testing.T) {
	c := New(&fakeAuth{Authenticated: true, Email: "user@example.com"}, logging.Discard())
	c.Start(context.Background())

	st := c.State()
	require.True(t, st.IsAuthenticated)
	require.False(t, st.IsLoading)
	require.Equal(t, &models.User{Email: "user@example.com"}, st.User)
}

func TestStart_SignedOut(t *testing.T) {
	c := New(&fakeAuth{}, logging.Discard())
	c.Start(context.Background())
	assert.Equal(t, State{}, c.State())
}

func TestStart_StorageFailureSignsOut(t *testing.T) {
	fa := &fakeAuth{Authenticated: true, AuthErr: &credentials.StoreError{Op: "read", Err: errors.New("locked")}}
	c := New(fa, logging.Discard())
	c.Start(context.Background())
	assert.Equal(t, State{}, c.State())
}

func TestLogin_PopulatesFullUser(t *testing.T) {
	c := signedIn(t, &fakeAuth{})

	st := c.State()
	require.True(t, st.IsAuthenticated)
	require.False(t, st.IsLoading)
	require.NotNil(t, st.User)
	assert.Equal(t, "user@example.com", st.User.Email)
	assert.Equal(t, "Jane Doe", st.User.FullName)
	assert.Equal(t, "Jane", st.User.FirstName)
	assert.Equal(t, "Doe", st.User.LastName)
	assert.Empty(t, st.User.PhoneNumber)
}

func TestLogin_FailureKeepsSignedOut(t *testing.T) {
	apiErr := &client.APIError{Kind: client.KindServer, Status: 401, Message: "Invalid credentials"}
	c := New(&fakeAuth{LoginErr: apiErr}, logging.Discard())
	c.Start(context.Background())

	err := c.Login(context.Background(), "user@example.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, State{}, c.State())
}

func TestRegister_TakesPhoneFromRequest(t *testing.T) {
	c := New(&fakeAuth{RegisterRet: janeResp}, logging.Discard())

	err := c.Register(context.Background(), "Jane Doe", "user@example.com", "+1 555 123 4567", "secret1")
	require.NoError(t, err)

	st := c.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "+1 555 123 4567", st.User.PhoneNumber)
	assert.Equal(t, "Jane Doe", st.User.FullName)
}

func TestLogout_ServerFailureStillSignsOut(t *testing.T) {
	fa := &fakeAuth{}
	c := signedIn(t, fa)
	fa.LogoutErr = client.ErrUnavailable

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, State{}, c.State())
	assert.Equal(t, 1, fa.LogoutCalls)
}

func TestLogout_StoreFailureReturned(t *testing.T) {
	fa := &fakeAuth{}
	c := signedIn(t, fa)
	fa.LogoutErr = &credentials.StoreError{Op: "delete", Err: errors.New("disk")}

	err := c.Logout(context.Background())
	var se *credentials.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, State{}, c.State())
}

func TestRefreshToken_Success(t *testing.T) {
	fa := &fakeAuth{}
	c := signedIn(t, fa)

	require.NoError(t, c.RefreshToken(context.Background()))
	st := c.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Zero(t, fa.LogoutCalls)
}

func TestRefreshToken_FailureLogsOut(t *testing.T) {
	fa := &fakeAuth{}
	c := signedIn(t, fa)
	fa.RefreshErr = client.ErrUnauthorized

	err := c.RefreshToken(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, 1, fa.LogoutCalls)
	assert.Equal(t, State{}, c.State())
}

func TestForceLogout_NoServerCall(t *testing.T) {
	fa := &fakeAuth{}
	c := signedIn(t, fa)

	c.ForceLogout(context.Background())
	assert.Equal(t, State{}, c.State())
	assert.Zero(t, fa.LogoutCalls)
}

func TestLoadingToggledOnEveryPath(t *testing.T) {
	fa := &fakeAuth{LoginErr: errors.New("boom")}
	c := New(fa, logging.Discard())
	rec := &recorder{}
	c.Subscribe(rec.record)

	_ = c.Login(context.Background(), "user@example.com", "secret1")
	assert.Equal(t, []bool{true, false}, rec.loadingFlags())

	fa.LoginErr, fa.LoginRet = nil, janeResp
	_ = c.Login(context.Background(), "user@example.com", "secret1")
	assert.Equal(t, []bool{true, false, true, false}, rec.loadingFlags())
	assert.False(t, c.State().IsLoading)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := New(&fakeAuth{}, logging.Discard())
	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.record)

	c.Start(context.Background())
	n := len(rec.loadingFlags())
	require.Positive(t, n)

	unsubscribe()
	unsubscribe()
	c.ForceLogout(context.Background())
	assert.Len(t, rec.loadingFlags(), n)
}

func TestState_ReturnsCopy(t *testing.T) {
	c := signedIn(t, &fakeAuth{})
	st := c.State()
	st.User.Email = "mallory@example.com"
	assert.Equal(t, "user@example.com", c.State().User.Email)
}

func TestClose_ClosesAuth(t *testing.T) {
	fa := &fakeAuth{CloseErr: errors.New("close")}
	c := New(fa, logging.Discard())
	require.EqualError(t, c.Close(), "close")
	assert.Equal(t, 1, fa.CloseCalls)
}
