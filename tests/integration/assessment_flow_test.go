package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizforge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// buildQuiz drives the authoring API to produce a two-question quiz: an mcq
// worth 10 points whose second option is correct, and a true/false worth 5
// points with TRUE correct (the kind's default).
func buildQuiz(t *testing.T) dto.QuizResponse {
	t.Helper()

	var quiz dto.QuizResponse
	resp := doJSON(t, "POST", "/api/quizzes", dto.CreateQuizRequest{Title: "Integration Quiz"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &quiz)

	resp = doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/questions", dto.AddQuestionRequest{Kind: "mcq"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &quiz)

	resp = doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/questions", dto.AddQuestionRequest{Kind: "true_false"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &quiz)

	mcq := quiz.Questions[0]
	resp = doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/questions/"+mcq.ID+"/options/"+mcq.Options[1].ID+"/correct", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &quiz)

	tfPoints := 5
	resp = doJSON(t, "PATCH", "/api/quizzes/"+quiz.ID+"/questions/"+quiz.Questions[1].ID, dto.UpdateQuestionRequest{Points: &tfPoints})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &quiz)

	t.Cleanup(func() {
		doJSON(t, "DELETE", "/api/quizzes/"+quiz.ID, nil)
	})
	return quiz
}

func TestAssessmentFlow(t *testing.T) {
	quiz := buildQuiz(t)

	// Issue a share link and resolve it anonymously.
	var link dto.ShareLinkResponse
	resp := doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/share", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &link)

	resp = doJSON(t, "GET", "/api/public/quizzes/"+link.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotContains(t, string(raw), "is_correct")

	var publicQuiz dto.PublicQuizResponse
	require.NoError(t, json.Unmarshal(raw, &publicQuiz))
	require.Len(t, publicQuiz.Questions, 2)

	// Take the quiz through the token: all answers correct scores 15/15.
	var session dto.SessionResponse
	resp = doJSON(t, "POST", "/api/public/quizzes/"+link.Token+"/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &session)
	assert.Equal(t, "anonymous", session.TakerID)

	mcq := publicQuiz.Questions[0]
	tf := publicQuiz.Questions[1]
	resp = doJSON(t, "POST", "/api/sessions/"+session.ID+"/answers", dto.AnswerRequest{
		QuestionID: mcq.ID, Value: quiz.Questions[0].Options[1].ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var correctTF string
	for _, o := range tf.Options {
		if o.Text == "TRUE" {
			correctTF = o.ID
		}
	}
	resp = doJSON(t, "POST", "/api/sessions/"+session.ID+"/answers", dto.AnswerRequest{
		QuestionID: tf.ID, Value: correctTF,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var result dto.SessionResultResponse
	resp = doJSON(t, "POST", "/api/sessions/"+session.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &result)
	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, 15, result.PossiblePoints)
	assert.Equal(t, 100, result.ScorePercent)
	assert.True(t, result.Passed)

	// A second submit reports the terminal conflict.
	resp = doJSON(t, "POST", "/api/sessions/"+session.ID+"/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestShareLinkRevocation(t *testing.T) {
	quiz := buildQuiz(t)

	var link dto.ShareLinkResponse
	resp := doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/share", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &link)

	// A session started before revocation keeps its snapshot.
	var session dto.SessionResponse
	resp = doJSON(t, "POST", "/api/public/quizzes/"+link.Token+"/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &session)

	visibility := "private"
	resp = doJSON(t, "PATCH", "/api/quizzes/"+quiz.ID+"/settings", dto.UpdateSettingsRequest{Visibility: &visibility})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", "/api/public/quizzes/"+link.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var result dto.SessionResultResponse
	resp = doJSON(t, "POST", "/api/sessions/"+session.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &result)
	assert.Equal(t, 15, result.PossiblePoints)

	// Flipping back public revalidates the original token.
	visibility = "public"
	resp = doJSON(t, "PATCH", "/api/quizzes/"+quiz.ID+"/settings", dto.UpdateSettingsRequest{Visibility: &visibility})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", "/api/public/quizzes/"+link.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestPreviewFlow(t *testing.T) {
	quiz := buildQuiz(t)

	var preview dto.PreviewResponse
	resp := doJSON(t, "POST", "/api/quizzes/"+quiz.ID+"/preview", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &preview)

	// The preview follows live edits.
	text := "Edited while previewing"
	resp = doJSON(t, "PATCH", "/api/quizzes/"+quiz.ID+"/questions/"+quiz.Questions[0].ID, dto.UpdateQuestionRequest{Text: &text})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "GET", "/api/previews/"+preview.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &preview)
	assert.Equal(t, text, preview.Quiz.Questions[0].Text)

	resp = doJSON(t, "DELETE", "/api/previews/"+preview.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}
