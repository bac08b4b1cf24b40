package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
)

// ---- service stubs ----

type stubSession struct {
	user *models.User

	loginRet  *models.User
	loginErr  error
	signupRet *models.User
	signupErr error
	deleteErr error

	lastSignup api.SignupRequest
	lastPatch  models.UserPatch
}

func (s *stubSession) Login(ctx context.Context, email, password string) (*models.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	s.user = s.loginRet
	return s.loginRet, nil
}

func (s *stubSession) Signup(ctx context.Context, req api.SignupRequest) (*models.User, error) {
	s.lastSignup = req
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	s.user = s.signupRet
	return s.signupRet, nil
}

func (s *stubSession) Logout(ctx context.Context) error {
	s.user = nil
	return nil
}

func (s *stubSession) DeleteAccount(ctx context.Context) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.user = nil
	return nil
}

func (s *stubSession) UpdateUserProfile(ctx context.Context, patch models.UserPatch) error {
	s.lastPatch = patch
	return nil
}

func (s *stubSession) CurrentUser() *models.User       { return s.user }
func (s *stubSession) IsAuthenticated() bool           { return s.user != nil }
func (s *stubSession) LoginError() string              { return "" }
func (s *stubSession) IsLoading() bool                 { return false }
func (s *stubSession) Close(ctx context.Context) error { return nil }

type stubGarden struct {
	setUsers []*models.User
	crops    []string
	addErr   error
	syncErr  error
}

func (g *stubGarden) SetUser(ctx context.Context, user *models.User) {
	g.setUsers = append(g.setUsers, user)
}
func (g *stubGarden) Sync(ctx context.Context) error { return g.syncErr }
func (g *stubGarden) AddCrop(ctx context.Context, name string) error {
	if g.addErr != nil {
		return g.addErr
	}
	g.crops = append(g.crops, name)
	return nil
}
func (g *stubGarden) RemoveCrop(ctx context.Context, name string) error { return nil }
func (g *stubGarden) UserCrops() []string                               { return g.crops }

type stubRecom struct {
	recommendRet  []models.Crop
	recommendErr  error
	companionsRet []models.Crop
	companionsErr error
}

func (r *stubRecom) Recommend(ctx context.Context, q models.RecommendationQuery) ([]models.Crop, error) {
	return r.recommendRet, r.recommendErr
}
func (r *stubRecom) CompanionDetails(ctx context.Context, crop models.Crop) ([]models.Crop, error) {
	return r.companionsRet, r.companionsErr
}

// ---- seams ----

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// scriptInput replaces the interactive input seams with queued answers.
// getPassword always yields "secret".
func scriptInput(t *testing.T, answers ...string) {
	t.Helper()
	origText := getSimpleText
	origPassword := getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		answer := answers[i]
		i++
		return answer, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte("secret"), nil
	}
	t.Cleanup(func() {
		getSimpleText = origText
		getPassword = origPassword
	})
}

func outputContains(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func newTestApp(sess *stubSession, garden *stubGarden, recom *stubRecom) *App {
	return &App{
		session: sess,
		garden:  garden,
		recom:   recom,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

// ---- TESTS ----

func TestLogin_Success_PointsGardenAtUser(t *testing.T) {
	out := captureOutput(t)
	scriptInput(t, "ann@example.com")

	sess := &stubSession{loginRet: &models.User{ID: 3, Name: "Ann", Email: "ann@example.com"}}
	garden := &stubGarden{}
	a := newTestApp(sess, garden, &stubRecom{})

	require.NoError(t, a.Login(context.Background()))
	require.True(t, outputContains(*out, "Welcome back, Ann!"))
	require.Len(t, garden.setUsers, 1)
	require.Equal(t, 3, garden.setUsers[0].ID)
}

func TestLogin_VerificationRequired_PromptsForVerification(t *testing.T) {
	out := captureOutput(t)
	scriptInput(t, "ann@example.com")

	sess := &stubSession{loginErr: &api.EmailNotVerifiedError{Email: "ann@example.com", UserID: 3}}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.Error(t, a.Login(context.Background()))
	require.True(t, outputContains(*out, "Please verify ann@example.com"))
}

func TestSignup_EmailExists_FriendlyMessage(t *testing.T) {
	out := captureOutput(t)
	// name, email, phone, latitude (skip location)
	scriptInput(t, "Ann", "ann@example.com", "", "")

	sess := &stubSession{signupErr: api.ErrEmailExists}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.ErrorIs(t, a.Signup(context.Background()), api.ErrEmailExists)
	require.True(t, outputContains(*out, "already registered"))
}

func TestSignup_PasswordPolicy_ListsViolations(t *testing.T) {
	out := captureOutput(t)
	scriptInput(t, "Ann", "ann@example.com", "", "")

	sess := &stubSession{signupErr: &api.PasswordPolicyError{PasswordErrors: []string{"too short", "needs a digit"}}}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.Error(t, a.Signup(context.Background()))
	require.True(t, outputContains(*out, "too short"))
	require.True(t, outputContains(*out, "needs a digit"))
}

func TestSignup_WithCoordinates_SentToService(t *testing.T) {
	captureOutput(t)
	scriptInput(t, "Ann", "ann@example.com", "555", "18.52", "73.85")

	sess := &stubSession{signupRet: &models.User{ID: 1, Name: "Ann"}}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.NoError(t, a.Signup(context.Background()))
	require.NotNil(t, sess.lastSignup.Location)
	require.InDelta(t, 18.52, sess.lastSignup.Location.Latitude, 1e-9)
	require.InDelta(t, 73.85, sess.lastSignup.Location.Longitude, 1e-9)
}

func TestLogout_ClearsGardenView(t *testing.T) {
	captureOutput(t)

	sess := &stubSession{user: &models.User{ID: 3}}
	garden := &stubGarden{}
	a := newTestApp(sess, garden, &stubRecom{})

	require.NoError(t, a.Logout(context.Background()))
	require.False(t, sess.IsAuthenticated())
	require.Len(t, garden.setUsers, 1)
	require.Nil(t, garden.setUsers[0])
}

func TestDeleteAccount_RequiresConfirmation(t *testing.T) {
	out := captureOutput(t)
	scriptInput(t, "no")

	sess := &stubSession{user: &models.User{ID: 3}}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.NoError(t, a.DeleteAccount(context.Background()))
	require.True(t, sess.IsAuthenticated(), "declined confirmation must not delete")
	require.True(t, outputContains(*out, "Cancelled"))
}

func TestDeleteAccount_Confirmed_ClearsEverything(t *testing.T) {
	captureOutput(t)
	scriptInput(t, "yes")

	sess := &stubSession{user: &models.User{ID: 3}}
	garden := &stubGarden{}
	a := newTestApp(sess, garden, &stubRecom{})

	require.NoError(t, a.DeleteAccount(context.Background()))
	require.False(t, sess.IsAuthenticated())
	require.Len(t, garden.setUsers, 1)
	require.Nil(t, garden.setUsers[0])
}

func TestUpdateProfile_EmptyAnswersKeepValues(t *testing.T) {
	captureOutput(t)
	scriptInput(t, "", "")

	sess := &stubSession{user: &models.User{ID: 3, Name: "Ann", Phone: "1"}}
	a := newTestApp(sess, &stubGarden{}, &stubRecom{})

	require.NoError(t, a.UpdateProfile(context.Background()))
	require.Nil(t, sess.lastPatch.Name)
	require.Nil(t, sess.lastPatch.Phone)
}

func TestGarden_PrintsCrops(t *testing.T) {
	out := captureOutput(t)

	sess := &stubSession{user: &models.User{ID: 3}}
	garden := &stubGarden{crops: []string{"tomato", "basil"}}
	a := newTestApp(sess, garden, &stubRecom{})

	require.NoError(t, a.Garden(context.Background()))
	require.True(t, outputContains(*out, "1. tomato"))
	require.True(t, outputContains(*out, "2. basil"))
}

func TestRecommendThenShow_ResolvesCompanions(t *testing.T) {
	out := captureOutput(t)
	scriptInput(t, "Pune", "full", "medium", "12")

	recom := &stubRecom{
		recommendRet: []models.Crop{
			{ID: 1, Name: "Tomato", CompanionCrops: []string{"Basil"}},
			{ID: 2, Name: "Okra"},
		},
		companionsRet: []models.Crop{{Name: "Basil", Description: "fragrant herb"}},
	}
	a := newTestApp(&stubSession{}, &stubGarden{}, recom)

	require.NoError(t, a.Recommend(context.Background()))
	require.True(t, outputContains(*out, "1. Tomato"))
	require.True(t, outputContains(*out, "2. Okra"))

	require.NoError(t, a.Show(context.Background(), "1"))
	require.NotNil(t, a.inspected)
	require.Equal(t, "Tomato", a.inspected.Name)
	require.Len(t, a.companions, 1)
	require.True(t, outputContains(*out, "Basil: fragrant herb"))
}

func TestShow_ByName_CaseInsensitive(t *testing.T) {
	captureOutput(t)

	a := newTestApp(&stubSession{}, &stubGarden{}, &stubRecom{})
	a.recommended = []models.Crop{{Name: "Tomato"}}

	require.NoError(t, a.Show(context.Background(), "tomato"))
	require.NotNil(t, a.inspected)
}

func TestShow_WithoutRecommendations_Hints(t *testing.T) {
	out := captureOutput(t)

	a := newTestApp(&stubSession{}, &stubGarden{}, &stubRecom{})
	require.NoError(t, a.Show(context.Background(), "1"))
	require.True(t, outputContains(*out, "Run 'recommend' first"))
}
