package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Every endpoint answers with the same envelope:
// {success, message?, data?, errors?}.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondBindError maps gin binding failures to a 400 with the flattened
// validator field errors, matching the envelope's errors array.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation errors",
		"errors":  validationMessages(err),
	})
}

func respondServerError(c *gin.Context, op string, err error) {
	// Internal detail stays in the log, not the response.
	log.Printf("%s error: %v", op, err)
	respondError(c, http.StatusInternalServerError, "Server error")
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
		return msgs
	}
	return []string{err.Error()}
}
