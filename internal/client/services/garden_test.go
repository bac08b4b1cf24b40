package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pocketfarm/pocketfarm-cli/internal/client/api"
	"github.com/pocketfarm/pocketfarm-cli/internal/client/models"
	"github.com/pocketfarm/pocketfarm-cli/internal/common"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(msg string) { n.messages = append(n.messages, msg) }

func newGarden(fc *fakeClient) (GardenService, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewGardenService(fc, testLogger(), n), n
}

func TestAddCrop_Unauthenticated_NoNetworkNoChange(t *testing.T) {
	fc := &fakeClient{}
	g, n := newGarden(fc)

	err := g.AddCrop(context.Background(), "Tomato")
	require.ErrorIs(t, err, common.ErrNoUserLoggedIn)
	require.Zero(t, fc.totalCalls())
	require.Empty(t, g.UserCrops())
	require.NotEmpty(t, n.messages)
}

func TestSetUser_TriggersSyncAndSchedules(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"tomato", "basil"}}
	g, _ := newGarden(fc)

	g.SetUser(context.Background(), &models.User{ID: 7})

	require.Equal(t, []string{"tomato", "basil"}, g.UserCrops())
	require.Equal(t, 1, fc.callCount("get_user_crops"))
	require.Equal(t, 1, fc.callCount("create_schedule:tomato"))
	require.Equal(t, 1, fc.callCount("create_schedule:basil"))
}

func TestSync_ScheduleFailuresDoNotAlterCrops(t *testing.T) {
	fc := &fakeClient{
		GetUserCropsRet:   []string{"tomato", "basil"},
		CreateScheduleErr: &api.ServerError{StatusCode: 500, Message: "boom"},
	}
	g, n := newGarden(fc)

	g.SetUser(context.Background(), &models.User{ID: 7})

	require.Equal(t, []string{"tomato", "basil"}, g.UserCrops())
	require.Empty(t, n.messages, "schedule failures must never surface to the user")
}

func TestSync_FetchError_KeepsPreviousStateAndNotifies(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"tomato"}}
	g, n := newGarden(fc)

	g.SetUser(context.Background(), &models.User{ID: 7})
	require.Equal(t, []string{"tomato"}, g.UserCrops())

	fc.GetUserCropsErr = &api.ServerError{StatusCode: 500, Message: "down"}
	err := g.Sync(context.Background())
	require.Error(t, err)
	require.Equal(t, []string{"tomato"}, g.UserCrops())
	require.Contains(t, n.messages[len(n.messages)-1], "Could not load your garden")
}

func TestSetUser_SameID_NoResync(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"tomato"}}
	g, _ := newGarden(fc)

	user := &models.User{ID: 7}
	g.SetUser(context.Background(), user)
	g.SetUser(context.Background(), user)

	require.Equal(t, 1, fc.callCount("get_user_crops"))
}

func TestSetUser_Nil_ClearsCrops(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"tomato"}}
	g, _ := newGarden(fc)

	g.SetUser(context.Background(), &models.User{ID: 7})
	require.NotEmpty(t, g.UserCrops())

	g.SetUser(context.Background(), nil)
	require.Empty(t, g.UserCrops())
}

func TestAddCrop_AppendsOnlyAfterConfirmation(t *testing.T) {
	fc := &fakeClient{}
	g, n := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	require.NoError(t, g.AddCrop(context.Background(), "Tomato"))
	require.Equal(t, []string{"Tomato"}, g.UserCrops())
	require.Equal(t, 1, fc.callCount("add_to_library:Tomato"))
	require.Equal(t, 1, fc.callCount("create_schedule:Tomato"))
	require.Contains(t, n.messages[len(n.messages)-1], "added to your garden")
}

func TestAddCrop_ServerError_NoLocalChangeAndRethrown(t *testing.T) {
	fc := &fakeClient{AddToLibraryErr: &api.ServerError{StatusCode: 404, Message: `Crop "X" not found in the database`}}
	g, n := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	err := g.AddCrop(context.Background(), "X")
	require.Error(t, err)
	require.Empty(t, g.UserCrops())
	require.Contains(t, n.messages[len(n.messages)-1], "Could not add X")
}

func TestAddCrop_ScheduleFailure_NonFatal(t *testing.T) {
	fc := &fakeClient{CreateScheduleErr: &api.ServerError{StatusCode: 500, Message: "boom"}}
	g, _ := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	require.NoError(t, g.AddCrop(context.Background(), "Tomato"))
	require.Equal(t, []string{"Tomato"}, g.UserCrops())
}

func TestAddThenRemove_RestoresOriginalState(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"basil"}}
	g, _ := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	before := g.UserCrops()

	require.NoError(t, g.AddCrop(context.Background(), "Tomato"))
	require.NoError(t, g.RemoveCrop(context.Background(), "Tomato"))

	require.Equal(t, before, g.UserCrops())
}

func TestRemoveCrop_MissingScheduleToleratedSilently(t *testing.T) {
	fc := &fakeClient{
		GetUserCropsRet:   []string{"Tomato"},
		DeleteScheduleErr: fmt.Errorf("schedule for %q: %w", "Tomato", common.ErrorNotFound),
	}
	g, n := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	require.NoError(t, g.RemoveCrop(context.Background(), "Tomato"))
	require.Empty(t, g.UserCrops())
	require.Contains(t, n.messages[len(n.messages)-1], "removed from your garden")
}

func TestRemoveCrop_ServerError_NoLocalChangeAndRethrown(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"Tomato"}}
	g, _ := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	fc.RemoveFromGardenErr = &api.ServerError{StatusCode: 500, Message: "boom"}
	err := g.RemoveCrop(context.Background(), "Tomato")
	require.Error(t, err)
	require.Equal(t, []string{"Tomato"}, g.UserCrops())
}

func TestSync_WithoutUser_Fails(t *testing.T) {
	fc := &fakeClient{}
	g, _ := newGarden(fc)

	require.ErrorIs(t, g.Sync(context.Background()), common.ErrNoUserLoggedIn)
	require.Zero(t, fc.totalCalls())
}

func TestNotifications_DeliveredThroughFuncAdapter(t *testing.T) {
	// The CLI installs its notifier as a NotifierFunc; every user-facing
	// message must arrive through the adapter.
	fc := &fakeClient{}
	var messages []string
	g := NewGardenService(fc, testLogger(), NotifierFunc(func(msg string) {
		messages = append(messages, msg)
	}))
	g.SetUser(context.Background(), &models.User{ID: 7})

	require.NoError(t, g.AddCrop(context.Background(), "Tomato"))
	require.NoError(t, g.RemoveCrop(context.Background(), "Tomato"))

	require.Len(t, messages, 2)
	require.Contains(t, messages[0], "added to your garden")
	require.Contains(t, messages[1], "removed from your garden")
}

func TestNilNotifier_DefaultsToNop(t *testing.T) {
	fc := &fakeClient{}
	g := NewGardenService(fc, testLogger(), nil)
	g.SetUser(context.Background(), &models.User{ID: 7})

	require.NoError(t, g.AddCrop(context.Background(), "Tomato"))
	require.Equal(t, []string{"Tomato"}, g.UserCrops())
}

func TestUserCrops_ReturnsCopy(t *testing.T) {
	fc := &fakeClient{GetUserCropsRet: []string{"tomato", "basil"}}
	g, _ := newGarden(fc)
	g.SetUser(context.Background(), &models.User{ID: 7})

	crops := g.UserCrops()
	crops[0] = "mutated"
	require.Equal(t, []string{"tomato", "basil"}, g.UserCrops())
}
