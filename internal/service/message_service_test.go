package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageFixture(t *testing.T) (*fakeStore, IMessageService) {
	t.Helper()
	store := newFakeStore()
	return store, NewMessageService(store.factory(), nil)
}

func TestSendAssignsIdAndTimestamp(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")

	first, err := svc.Send(context.Background(), alice.Id, bob.Id, "hello")
	require.NoError(t, err)
	second, err := svc.Send(context.Background(), alice.Id, bob.Id, "again")
	require.NoError(t, err)

	assert.NotZero(t, first.Id)
	assert.Greater(t, second.Id, first.Id)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))
	assert.Equal(t, alice.Id, first.SenderId)
	assert.Equal(t, bob.Id, first.ReceiverId)
	assert.Equal(t, "hello", first.Content)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")

	_, err := svc.Send(context.Background(), alice.Id, bob.Id, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, store.messages)
}

func TestSendRejectsUnknownReceiver(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")

	_, err := svc.Send(context.Background(), alice.Id, 999, "hello")
	assert.ErrorIs(t, err, ErrUnknownReceiver)
	assert.Empty(t, store.messages)
}

func TestSendToSelf(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")

	msg, err := svc.Send(context.Background(), alice.Id, alice.Id, "reminder")
	require.NoError(t, err)
	assert.Equal(t, alice.Id, msg.SenderId)
	assert.Equal(t, alice.Id, msg.ReceiverId)
}

func TestGetMessagesEmptyHistory(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")

	messages, err := svc.GetMessages(context.Background(), alice.Id, bob.Id)
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestGetMessagesOrderedOldestFirst(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")
	carol := store.addUser("carol", "Carol")

	ctx := context.Background()
	_, err := svc.Send(ctx, alice.Id, bob.Id, "one")
	require.NoError(t, err)
	_, err = svc.Send(ctx, bob.Id, alice.Id, "two")
	require.NoError(t, err)
	_, err = svc.Send(ctx, alice.Id, carol.Id, "unrelated")
	require.NoError(t, err)
	_, err = svc.Send(ctx, alice.Id, bob.Id, "three")
	require.NoError(t, err)

	messages, err := svc.GetMessages(ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "two", messages[1].Content)
	assert.Equal(t, "three", messages[2].Content)

	// The pair is unordered: both participants see the same history.
	mirror, err := svc.GetMessages(ctx, bob.Id, alice.Id)
	require.NoError(t, err)
	require.Len(t, mirror, 3)
	assert.Equal(t, messages[0].Id, mirror[0].Id)
	assert.Equal(t, messages[2].Id, mirror[2].Id)
}

func TestGetConversationsOrderedByLatestActivity(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")
	carol := store.addUser("carol", "Carol")
	dave := store.addUser("dave", "Dave")

	ctx := context.Background()
	// Alice talks to Bob, then Carol messages Alice, then Bob again.
	_, err := svc.Send(ctx, alice.Id, bob.Id, "hi bob")
	require.NoError(t, err)
	_, err = svc.Send(ctx, carol.Id, alice.Id, "hi alice")
	require.NoError(t, err)
	_, err = svc.Send(ctx, bob.Id, alice.Id, "hi back")
	require.NoError(t, err)
	// Dave never talked to Alice.
	_, err = svc.Send(ctx, dave.Id, bob.Id, "hey bob")
	require.NoError(t, err)

	conversations, err := svc.GetConversations(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, bob.Id, conversations[0].Id)
	assert.Equal(t, carol.Id, conversations[1].Id)
}

func TestGetConversationsDistinctCounterparties(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")
	bob := store.addUser("bob", "Bob")

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Send(ctx, alice.Id, bob.Id, "ping")
		require.NoError(t, err)
		_, err = svc.Send(ctx, bob.Id, alice.Id, "pong")
		require.NoError(t, err)
	}

	conversations, err := svc.GetConversations(ctx, alice.Id)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, bob.Id, conversations[0].Id)
	assert.Equal(t, "bob", conversations[0].Username)
}

func TestGetConversationsEmpty(t *testing.T) {
	store, svc := newMessageFixture(t)
	alice := store.addUser("alice", "Alice")

	conversations, err := svc.GetConversations(context.Background(), alice.Id)
	require.NoError(t, err)
	assert.NotNil(t, conversations)
	assert.Empty(t, conversations)
}
