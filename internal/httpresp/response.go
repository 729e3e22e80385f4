package httpresp

import (
	"github.com/gin-gonic/gin"

	"github.com/lavarapido/wash-scheduler/internal/dto"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type PageResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination dto.Pagination `json:"pagination"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Page[T any](c *gin.Context, data []T, p dto.Pagination) {
	c.JSON(200, PageResponse[T]{
		Data:       data,
		Pagination: p,
	})
}
