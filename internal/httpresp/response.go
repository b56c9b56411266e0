package httpresp

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(200, body)
}

func Created(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(201, body)
}

func Message(c *gin.Context, message string) {
	c.JSON(200, gin.H{
		"success": true,
		"message": message,
	})
}
