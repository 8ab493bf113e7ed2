// Package httpresp holds the success-side JSON envelopes; error
// responses live in httperr.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse is the envelope collection endpoints return: the rows
// plus their count, so clients never have to count themselves.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
