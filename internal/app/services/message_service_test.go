package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/tutorhub/internal/app/models"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
)

func newMessageService(env *testEnv) *MessageService {
	return NewMessageService(env.messages, env.relationships, env.users)
}

// pairUp creates an active pairing between the given student and tutor
// accounts.
func pairUp(t *testing.T, env *testEnv, studentUserID, studentID, tutorUserID int64) {
	t.Helper()
	svc := newRelationshipService(env)
	_, err := svc.ConfirmStudent(context.Background(), tutorUserID, studentID)
	require.NoError(t, err)
}

func TestCanConverse_RequiresActivePairing(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, tutor := env.addTutor("bob")
	svc := newMessageService(env)

	// Pending is not enough
	_, _, err := newRelationshipService(env).RequestTutor(context.Background(), studentUser.ID, tutor.ID)
	require.NoError(t, err)

	allowed, err := svc.CanConverse(context.Background(), studentUser, tutorUser.ID)
	require.NoError(t, err)
	assert.False(t, allowed)

	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)

	allowed, err = svc.CanConverse(context.Background(), studentUser, tutorUser.ID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanConverse_IsSymmetric(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	fromStudent, err := svc.CanConverse(context.Background(), studentUser, tutorUser.ID)
	require.NoError(t, err)
	fromTutor, err := svc.CanConverse(context.Background(), tutorUser, studentUser.ID)
	require.NoError(t, err)

	assert.True(t, fromStudent)
	assert.True(t, fromTutor)
}

func TestCanConverse_NeverWithSelf(t *testing.T) {
	env := newTestEnv()
	admin := env.addUser("root", true)
	svc := newMessageService(env)

	// Staff override does not extend to self-conversations
	allowed, err := svc.CanConverse(context.Background(), admin, admin.ID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanConverse_StaffTalksToAnyone(t *testing.T) {
	env := newTestEnv()
	admin := env.addUser("root", true)
	studentUser, _ := env.addStudent("alice")
	svc := newMessageService(env)

	allowed, err := svc.CanConverse(context.Background(), admin, studentUser.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The override is one-directional
	allowed, err = svc.CanConverse(context.Background(), studentUser, admin.ID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestPostMessage_DeniedWriteStoresNothing(t *testing.T) {
	env := newTestEnv()
	studentUser, _ := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "hello")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, env.messages.messages)
}

func TestPostMessage_RejectsEmptyText(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, env.messages.messages)
}

func TestPostMessage_TrimsAndStores(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	msg, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "  hi there  ")
	require.NoError(t, err)
	assert.Equal(t, "hi there", msg.Text)
	assert.Equal(t, studentUser.ID, msg.SenderID)
	assert.Equal(t, tutorUser.ID, msg.RecipientID)
	assert.Equal(t, "alice", msg.SenderUsername)
	assert.Equal(t, "bob", msg.RecipientUsername)
}

func TestListThread_SeesBothDirections(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "hi")
	require.NoError(t, err)
	_, err = svc.PostMessage(context.Background(), tutorUser.ID, studentUser.ID, "hello back")
	require.NoError(t, err)

	thread, err := svc.ListThread(context.Background(), studentUser.ID, tutorUser.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Text)
	assert.Equal(t, "hello back", thread[1].Text)

	// The same thread reads identically from the other side
	mirror, err := svc.ListThread(context.Background(), tutorUser.ID, studentUser.ID)
	require.NoError(t, err)
	require.Len(t, mirror, 2)
	assert.Equal(t, thread[0].ID, mirror[0].ID)
}

func TestListThread_InterleavedMessagesKeepSendOrder(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "first")
	require.NoError(t, err)
	_, err = svc.PostMessage(context.Background(), tutorUser.ID, studentUser.ID, "second")
	require.NoError(t, err)
	_, err = svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "third")
	require.NoError(t, err)

	thread, err := svc.ListThread(context.Background(), studentUser.ID, tutorUser.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "first", thread[0].Text)
	assert.Equal(t, "second", thread[1].Text)
	assert.Equal(t, "third", thread[2].Text)
}

func TestListThread_OrdersByTimestampThenID(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	base := time.Now()
	env.messages.messages = []*models.Message{
		{ID: 2, SenderID: tutorUser.ID, RecipientID: studentUser.ID, Text: "later", CreatedAt: base.Add(time.Minute)},
		{ID: 3, SenderID: studentUser.ID, RecipientID: tutorUser.ID, Text: "same-instant-b", CreatedAt: base},
		{ID: 1, SenderID: studentUser.ID, RecipientID: tutorUser.ID, Text: "same-instant-a", CreatedAt: base},
	}

	thread, err := svc.ListThread(context.Background(), studentUser.ID, tutorUser.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "same-instant-a", thread[0].Text)
	assert.Equal(t, "same-instant-b", thread[1].Text)
	assert.Equal(t, "later", thread[2].Text)
}

func TestListThread_DeniedWithoutPairing(t *testing.T) {
	env := newTestEnv()
	studentUser, _ := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	svc := newMessageService(env)

	_, err := svc.ListThread(context.Background(), studentUser.ID, tutorUser.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestListThread_RemovalCutsAccessButKeepsHistory(t *testing.T) {
	env := newTestEnv()
	studentUser, student := env.addStudent("alice")
	tutorUser, _ := env.addTutor("bob")
	pairUp(t, env, studentUser.ID, student.ID, tutorUser.ID)
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, tutorUser.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, newRelationshipService(env).RemoveStudent(context.Background(), tutorUser.ID, student.ID))

	_, err = svc.ListThread(context.Background(), studentUser.ID, tutorUser.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Messages survive; only the gate is closed
	assert.Len(t, env.messages.messages, 1)
}

func TestMessage_UnknownRecipient(t *testing.T) {
	env := newTestEnv()
	studentUser, _ := env.addStudent("alice")
	svc := newMessageService(env)

	_, err := svc.PostMessage(context.Background(), studentUser.ID, 999, "hi")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
