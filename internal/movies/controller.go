package movies

import (
	"net/http"

	"booko/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateMovie(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := c.service.CreateMovie(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create movie", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

func (c *Controller) GetMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	movie, err := c.service.GetMovieByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get movie", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (c *Controller) GetAllMovies(ctx *gin.Context) {
	var query MovieListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	movies, err := c.service.GetAllMovies(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list movies", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movies retrieved successfully", movies, nil)
}

func (c *Controller) UpdateMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	var req UpdateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := c.service.UpdateMovie(ctx.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update movie", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie updated successfully", movie, nil)
}

func (c *Controller) DeleteMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	if err := c.service.DeleteMovie(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete movie", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}
