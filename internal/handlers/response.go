package handlers

import (
	"bytes"
	"strconv"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// respondRaw wraps an already serialized payload as {"data": payload}.
// Cached projections are written without being decoded again.
func respondRaw(c *gin.Context, status int, payload []byte) {
	var buf bytes.Buffer
	buf.Grow(len(payload) + 9)
	buf.WriteString(`{"data":`)
	buf.Write(payload)
	buf.WriteByte('}')
	c.Data(status, jsonContentType, buf.Bytes())
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
