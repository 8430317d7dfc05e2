package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careconnect/internal/config"
	"careconnect/internal/models"
)

func openConversation(t *testing.T, r *gin.Engine, token string, otherID uint) (map[string]any, int) {
	t.Helper()
	w := doRequest(t, r, "POST", "/messages/conversations", token, map[string]any{"user_id": otherID})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, w.Code, w.Body.String())
	return decodeBody(t, w)["conversation"].(map[string]any), w.Code
}

func TestFindOrCreateConversationIsSymmetric(t *testing.T) {
	r := setupTest(t)

	alice := createUser(t, "Alice", "alice@example.com", "care_seeker")
	bob := createUser(t, "Bob", "bob@example.com", "caregiver")

	first, code := openConversation(t, r, tokenFor(t, alice), bob.ID)
	assert.Equal(t, http.StatusCreated, code)

	// the reverse direction resolves to the same thread
	second, code := openConversation(t, r, tokenFor(t, bob), alice.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, first["ID"], second["ID"])

	var count int64
	config.DB.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// self and unknown targets are rejected
	w := doRequest(t, r, "POST", "/messages/conversations", tokenFor(t, alice), map[string]any{"user_id": alice.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = doRequest(t, r, "POST", "/messages/conversations", tokenFor(t, alice), map[string]any{"user_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessagingReadMarking(t *testing.T) {
	r := setupTest(t)

	alice := createUser(t, "Alice", "alice@example.com", "care_seeker")
	bob := createUser(t, "Bob", "bob@example.com", "caregiver")
	aliceToken := tokenFor(t, alice)
	bobToken := tokenFor(t, bob)

	conv, _ := openConversation(t, r, aliceToken, bob.ID)
	convID := uint(conv["ID"].(float64))
	threadURL := fmt.Sprintf("/messages/conversations/%d", convID)

	for _, content := range []string{"hello", "are you free tuesday?"} {
		w := doRequest(t, r, "POST", threadURL, aliceToken, map[string]any{"content": content})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := doRequest(t, r, "POST", threadURL, bobToken, map[string]any{"content": "yes, after 2pm"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Bob's unread count covers Alice's two messages.
	w = doRequest(t, r, "GET", "/messages/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	threads := decodeBody(t, w)["conversations"].([]any)
	require.Len(t, threads, 1)
	entry := threads[0].(map[string]any)
	assert.Equal(t, 2.0, entry["unread_count"])
	assert.Equal(t, "Alice", entry["other_user"].(map[string]any)["name"])
	assert.Equal(t, "yes, after 2pm", entry["latest_message"].(map[string]any)["content"])

	// Reading the thread marks only Bob's inbound messages.
	w = doRequest(t, r, "GET", threadURL, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decodeBody(t, w)["messages"].([]any)
	require.Len(t, messages, 3)
	assert.Equal(t, "hello", messages[0].(map[string]any)["content"])

	var unreadForBob, unreadForAlice int64
	config.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", bob.ID, false).Count(&unreadForBob)
	config.DB.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", alice.ID, false).Count(&unreadForAlice)
	assert.Equal(t, int64(0), unreadForBob)
	assert.Equal(t, int64(1), unreadForAlice)
}

func TestConversationsOrderedByActivity(t *testing.T) {
	r := setupTest(t)

	alice := createUser(t, "Alice", "alice@example.com", "care_seeker")
	bob := createUser(t, "Bob", "bob@example.com", "caregiver")
	carol := createUser(t, "Carol", "carol@example.com", "caregiver")
	aliceToken := tokenFor(t, alice)

	// a silent thread first, then one with traffic
	openConversation(t, r, aliceToken, carol.ID)
	active, _ := openConversation(t, r, aliceToken, bob.ID)
	threadURL := fmt.Sprintf("/messages/conversations/%d", uint(active["ID"].(float64)))
	w := doRequest(t, r, "POST", threadURL, aliceToken, map[string]any{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the thread with messages sorts first; the silent one last
	w = doRequest(t, r, "GET", "/messages/conversations", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	threads := decodeBody(t, w)["conversations"].([]any)
	require.Len(t, threads, 2)
	assert.Equal(t, "Bob", threads[0].(map[string]any)["other_user"].(map[string]any)["name"])
	assert.Equal(t, "Carol", threads[1].(map[string]any)["other_user"].(map[string]any)["name"])
}

func TestConversationHiddenFromOutsiders(t *testing.T) {
	r := setupTest(t)

	alice := createUser(t, "Alice", "alice@example.com", "care_seeker")
	bob := createUser(t, "Bob", "bob@example.com", "caregiver")

	conv, _ := openConversation(t, r, tokenFor(t, alice), bob.ID)
	threadURL := fmt.Sprintf("/messages/conversations/%d", uint(conv["ID"].(float64)))

	// outsiders and admins get the same 404 as a missing thread
	outsider := createUser(t, "Eve", "eve@example.com", "care_seeker")
	w := doRequest(t, r, "GET", threadURL, tokenFor(t, outsider), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	admin := createUser(t, "Admin", "admin@example.com", "admin")
	w = doRequest(t, r, "GET", threadURL, tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, "POST", threadURL, tokenFor(t, outsider), map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// listing shows nothing for the outsider
	w = doRequest(t, r, "GET", "/messages/conversations", tokenFor(t, outsider), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["conversations"])
}
