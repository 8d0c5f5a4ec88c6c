package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/porikkha/porikkha-backend/internal/response"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// parsePagination reads ?page= and ?per_page= query params with defaults.
func parsePagination(c *gin.Context) (page, perPage, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage, (page - 1) * perPage
}

// buildPagination assembles the response pagination block.
func buildPagination(page, perPage, total int) *response.Pagination {
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
