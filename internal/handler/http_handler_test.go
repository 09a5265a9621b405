package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/pkg/jwt"
	"github.com/Onlynfk/podground-backend-sub001/pkg/middleware"
)

const testSecret = "test-secret"

type stubSearchService struct {
	resp    *domain.SearchResponse
	err     error
	lastReq *domain.SearchRequest
}

func (s *stubSearchService) SearchAll(_ context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestRouter(svc *stubSearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := middleware.NewAuthMiddleware(jwt.NewVerifier(testSecret))
	NewHandler(svc).RegisterRoutes(r, auth)
	return r
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestSearchRequiresAuth(t *testing.T) {
	r := newTestRouter(&stubSearchService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=tech", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchSuccess(t *testing.T) {
	results := domain.NewCategoryResults()
	results.Podcasts = append(results.Podcasts, domain.PodcastResult{
		ID: "p1", Title: "Tech Talk", Type: domain.TypePodcast, RelevanceScore: 1.0,
	})
	svc := &stubSearchService{resp: &domain.SearchResponse{
		Query:        "tech talk",
		Limit:        10,
		TotalResults: 1,
		Results:      results,
	}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=tech+talk&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    domain.SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.TotalResults)
	require.Len(t, body.Data.Results.Podcasts, 1)
	assert.Equal(t, "Tech Talk", body.Data.Results.Podcasts[0].Title)

	// The requesting user comes from the verified token, never the query.
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "u1", svc.lastReq.UserID)
	assert.Equal(t, "tech talk", svc.lastReq.Query)
	assert.Equal(t, 10, svc.lastReq.Limit)
}

func TestSearchServiceFailure(t *testing.T) {
	svc := &stubSearchService{err: errors.New("store unreachable")}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=tech", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1"))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}
