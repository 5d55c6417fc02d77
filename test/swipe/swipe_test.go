package swipe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"gotest.tools/assert"

	mongoClient "github.com/matchpoint-app/backend/internal/datastore/mongo"
	"github.com/matchpoint-app/backend/internal/entity"
	matchRepository "github.com/matchpoint-app/backend/internal/repository/match"
	"github.com/matchpoint-app/backend/pkg/http_util"
	helper_test "github.com/matchpoint-app/backend/test/helper"
)

var globalResources *helper_test.TestServerResources

func TestMain(m *testing.M) {
	resources, err := helper_test.SetupTestServer(context.TODO())
	var code int

	if err != nil {
		log.Printf("Failed to set up test server: %s", err)
		code = 1
	} else {
		globalResources = resources
		code = m.Run()
	}

	resources.CleanupTestServer()
	os.Exit(code)
}

func TestMutualLikeCreatesMatch(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_mutual", "password123", "alice_mutual@example.com")
	bob := helper_test.SignUpUser(t, baseURL, "bob_mutual", "password123", "bob_mutual@example.com")

	aliceToken := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")
	bobToken := helper_test.SignInUser(t, baseURL, bob.Email, bob.Username, "password123")

	status, first := swipeRequest(t, aliceToken, bob.ID, true)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, first.OutcomeEnum, entity.OutcomeLiked)
	assert.Assert(t, first.Match == nil)

	status, second := swipeRequest(t, bobToken, alice.ID, true)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, second.OutcomeEnum, entity.OutcomeMatched)
	assert.Assert(t, second.Match != nil)
	assert.Equal(t, len(second.Match.Users), 2)
	assert.Assert(t, second.Match.HasUser(alice.ID))
	assert.Assert(t, second.Match.HasUser(bob.ID))
	assert.Assert(t, second.Match.LastMessageAt == nil)

	// Both sides see the same match.
	aliceMatches := listMatches(t, aliceToken)
	bobMatches := listMatches(t, bobToken)
	assert.Equal(t, len(aliceMatches), 1)
	assert.Equal(t, len(bobMatches), 1)
	assert.Equal(t, aliceMatches[0].ID, bobMatches[0].ID)

	mutual := mutualLikes(t, aliceToken)
	assert.Equal(t, len(mutual), 1)
	assert.Equal(t, mutual[0], bob.ID)
}

func TestDuplicateSwipeConflicts(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_dup", "password123", "alice_dup@example.com")
	targets, err := helper_test.PopulateUsers(globalResources.ORM, 1)
	if err != nil {
		t.Fatalf("Failed to populate users: %s", err)
	}

	token := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")

	status, _ := swipeRequest(t, token, targets[0].ID, true)
	assert.Equal(t, status, http.StatusOK)

	// The second decision for the same pair is rejected, even if it flips
	// the direction of the decision.
	status, _ = swipeRequest(t, token, targets[0].ID, false)
	assert.Equal(t, status, http.StatusConflict)
}

func TestRejectIsTerminal(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_rej", "password123", "alice_rej@example.com")
	bob := helper_test.SignUpUser(t, baseURL, "bob_rej", "password123", "bob_rej@example.com")

	aliceToken := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")
	bobToken := helper_test.SignInUser(t, baseURL, bob.Email, bob.Username, "password123")

	status, pass := swipeRequest(t, bobToken, alice.ID, false)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, pass.OutcomeEnum, entity.OutcomePassed)

	// Alice's like lands after Bob's pass; no match may come of it.
	status, like := swipeRequest(t, aliceToken, bob.ID, true)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, like.OutcomeEnum, entity.OutcomeLiked)
	assert.Assert(t, like.Match == nil)

	assert.Equal(t, len(listMatches(t, aliceToken)), 0)
	assert.Equal(t, len(listMatches(t, bobToken)), 0)
}

func TestDailySwipeLimit(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_limit", "password123", "alice_limit@example.com")
	targets, err := helper_test.PopulateUsers(globalResources.ORM, 9)
	if err != nil {
		t.Fatalf("Failed to populate users: %s", err)
	}

	token := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")

	for _, target := range targets[:8] {
		status, resp := swipeRequest(t, token, target.ID, true)
		assert.Equal(t, status, http.StatusOK)
		assert.Equal(t, resp.OutcomeEnum, entity.OutcomeLiked)
	}

	status, resp := swipeRequest(t, token, targets[8].ID, true)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, resp.OutcomeEnum, entity.OutcomeLimitReached)
	assert.Assert(t, resp.Swipe == nil)
}

func TestConversationBumpsMatchOrdering(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_chat", "password123", "alice_chat@example.com")
	bob := helper_test.SignUpUser(t, baseURL, "bob_chat", "password123", "bob_chat@example.com")
	carol := helper_test.SignUpUser(t, baseURL, "carol_chat", "password123", "carol_chat@example.com")

	aliceToken := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")
	bobToken := helper_test.SignInUser(t, baseURL, bob.Email, bob.Username, "password123")
	carolToken := helper_test.SignInUser(t, baseURL, carol.Email, carol.Username, "password123")

	// Alice matches with Bob first, then with Carol.
	swipeRequest(t, aliceToken, bob.ID, true)
	_, matchedBob := swipeRequest(t, bobToken, alice.ID, true)
	swipeRequest(t, aliceToken, carol.ID, true)
	_, matchedCarol := swipeRequest(t, carolToken, alice.ID, true)

	assert.Equal(t, matchedBob.OutcomeEnum, entity.OutcomeMatched)
	assert.Equal(t, matchedCarol.OutcomeEnum, entity.OutcomeMatched)

	// A message in the Bob conversation pushes it to the top of the list.
	message := sendMessage(t, aliceToken, matchedBob.Match.ID, "hi bob")
	assert.Equal(t, message.MatchID, matchedBob.Match.ID)

	matches := listMatches(t, aliceToken)
	assert.Equal(t, len(matches), 2)
	assert.Equal(t, matches[0].ID, matchedBob.Match.ID)
	assert.Assert(t, matches[0].LastMessageAt != nil)
	assert.Assert(t, matches[1].LastMessageAt == nil)

	messages := listMessages(t, bobToken, matchedBob.Match.ID)
	assert.Equal(t, len(messages), 1)
	assert.Equal(t, messages[0].Content, "hi bob")
	assert.Equal(t, messages[0].SenderID, alice.ID)
}

func TestTouchLastMessageMissingMatch(t *testing.T) {
	registry := matchRepository.New(globalResources.Mongo)
	collection := globalResources.Mongo.Collection(mongoClient.MatchesCollection)

	before, err := collection.CountDocuments(context.TODO(), bson.M{})
	if err != nil {
		t.Fatalf("count matches: %s", err)
	}

	_, err = registry.TouchLastMessage(context.TODO(), "no-such-match", time.Now().UTC())
	if !errors.Is(err, entity.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	after, err := collection.CountDocuments(context.TODO(), bson.M{})
	if err != nil {
		t.Fatalf("count matches: %s", err)
	}
	assert.Equal(t, after, before)
}

func TestDeletedMessageHiddenFromListing(t *testing.T) {
	baseURL := globalResources.BaseURL

	alice := helper_test.SignUpUser(t, baseURL, "alice_del", "password123", "alice_del@example.com")
	bob := helper_test.SignUpUser(t, baseURL, "bob_del", "password123", "bob_del@example.com")

	aliceToken := helper_test.SignInUser(t, baseURL, alice.Email, alice.Username, "password123")
	bobToken := helper_test.SignInUser(t, baseURL, bob.Email, bob.Username, "password123")

	swipeRequest(t, aliceToken, bob.ID, true)
	_, matched := swipeRequest(t, bobToken, alice.ID, true)
	assert.Equal(t, matched.OutcomeEnum, entity.OutcomeMatched)

	first := sendMessage(t, aliceToken, matched.Match.ID, "first")
	sendMessage(t, aliceToken, matched.Match.ID, "second")

	// Bob cannot delete Alice's message.
	status := deleteMessage(t, bobToken, first.ID)
	assert.Equal(t, status, http.StatusForbidden)

	status = deleteMessage(t, aliceToken, first.ID)
	assert.Equal(t, status, http.StatusOK)

	messages := listMessages(t, bobToken, matched.Match.ID)
	assert.Equal(t, len(messages), 1)
	assert.Equal(t, messages[0].Content, "second")
}

func swipeRequest(t *testing.T, token, targetID string, isLike bool) (int, entity.SwipeResponse) {
	body, err := json.Marshal(entity.SwipeRequest{TargetID: targetID, IsLike: isLike})
	if err != nil {
		t.Fatalf("Failed to marshal request body: %s", err)
	}

	req, err := http.NewRequest(http.MethodPost, globalResources.BaseURL+"/v1/swipes", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %s", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, entity.SwipeResponse{}
	}

	response := http_util.HTTPResponse[entity.SwipeResponse]{}
	response, err = http_util.DecodeBody[http_util.HTTPResponse[entity.SwipeResponse]](bodyBytes, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %s", err)
	}

	return resp.StatusCode, response.Data
}

func listMatches(t *testing.T, token string) []entity.Match {
	response := getJSON[entity.MatchListResponse](t, token, "/v1/matches")
	return response.Matches
}

func mutualLikes(t *testing.T, token string) []string {
	response := getJSON[entity.MutualLikesResponse](t, token, "/v1/likes/mutual")
	return response.UserIDs
}

func listMessages(t *testing.T, token, matchID string) []entity.Message {
	response := getJSON[entity.MessageListResponse](t, token, fmt.Sprintf("/v1/matches/%s/messages", matchID))
	return response.Messages
}

func sendMessage(t *testing.T, token, matchID, content string) *entity.Message {
	body, err := json.Marshal(entity.SendMessageRequest{Content: content, ContentType: "text"})
	if err != nil {
		t.Fatalf("Failed to marshal request body: %s", err)
	}

	url := fmt.Sprintf("%s/v1/matches/%s/messages", globalResources.BaseURL, matchID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	response := http_util.HTTPResponse[*entity.Message]{}
	response, err = http_util.DecodeBody[http_util.HTTPResponse[*entity.Message]](bodyBytes, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %s", err)
	}

	return response.Data
}

func deleteMessage(t *testing.T, token, messageID string) int {
	url := fmt.Sprintf("%s/v1/messages/%s", globalResources.BaseURL, messageID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %s", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %s", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode
}

func getJSON[T any](t *testing.T, token, urlPath string) T {
	req, err := http.NewRequest(http.MethodGet, globalResources.BaseURL+urlPath, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %s", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status code %d for %s, got %d", http.StatusOK, urlPath, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	response := http_util.HTTPResponse[T]{}
	response, err = http_util.DecodeBody[http_util.HTTPResponse[T]](bodyBytes, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %s", err)
	}

	return response.Data
}
