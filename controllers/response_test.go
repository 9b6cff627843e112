package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Product not found", body["message"])
	assert.NotContains(t, body, "data")
}

func TestRespondData(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondData(c, http.StatusOK, gin.H{"items": []string{}})

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "data")
}

func TestRespondBindErrorFlattensFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/cart/add",
		strings.NewReader(`{"quantity": 0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	err := c.ShouldBindJSON(&input)
	require.Error(t, err)

	respondBindError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation errors", body["message"])

	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, errs)
}
