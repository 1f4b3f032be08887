package course

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/courses", h.CreateCourse)
	r.GET("/courses", h.ListCourses)
	r.GET("/courses/:id", h.GetCourse)
	r.PUT("/courses/:id", h.UpdateCourse)
	r.DELETE("/courses/:id", h.DeleteCourse)

	r.GET("/courses/:id/workdays", h.ListWorkDays)
	r.POST("/courses/:id/workdays", h.AddWorkDays)
	r.DELETE("/courses/:id/workdays/:date", h.RemoveWorkDay)
}

func courseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrInvalid("invalid id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) ListCourses(c *gin.Context) {
	resp, err := h.svc.ListCourses(c.Request.Context(), c.Query("all"))
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetCourse(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid(err.Error()))
		return
	}
	resp, err := h.svc.CreateCourse(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid(err.Error()))
		return
	}
	resp, err := h.svc.UpdateCourse(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCourse(c.Request.Context(), id); err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListWorkDays(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListWorkDays(c.Request.Context(), id)
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddWorkDays(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req AddWorkDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid(err.Error()))
		return
	}
	resp, err := h.svc.AddWorkDays(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) RemoveWorkDay(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveWorkDay(c.Request.Context(), id, c.Param("date")); err != nil {
		c.JSON(toHTTPStatus(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}
