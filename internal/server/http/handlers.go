package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkomarov/garagehub/internal/common"
)

// Healthz is the unauthorized liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UserCars returns every entry owned by the caller, collections attached.
func (h *Handler) UserCars(c *gin.Context) {
	cars, err := h.garage.UserCars(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]carDTO, 0, len(cars))
	for _, car := range cars {
		out = append(out, toCarDTO(car))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cars": out})
}

// CreateCar persists a new entry and echoes it back with server-assigned
// id and rederived totals.
func (h *Handler) CreateCar(c *gin.Context) {
	var in carDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed entry payload"})
		return
	}

	created, err := h.garage.Create(c.Request.Context(), currentUserID(c), in.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "car": toCarDTO(created)})
}

// UpdateCar replaces an entry wholesale. An entry owned by someone else is
// reported as not found, not as forbidden.
func (h *Handler) UpdateCar(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("entryID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad entry id"})
		return
	}

	var in carDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "malformed entry payload"})
		return
	}

	if err := h.garage.Update(c.Request.Context(), currentUserID(c), entryID, in.toModel()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deleteRequest struct {
	EntryID int64 `json:"entryID"`
}

// DeleteCar removes an entry and everything it owns.
func (h *Handler) DeleteCar(c *gin.Context) {
	var in deleteRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.EntryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad delete payload"})
		return
	}

	if err := h.garage.Delete(c.Request.Context(), currentUserID(c), in.EntryID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CatalogMods returns the catalog snapshot, optionally for one category.
func (h *Handler) CatalogMods(c *gin.Context) {
	mods, err := h.garage.CatalogMods(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]modDTO, 0, len(mods))
	for _, m := range mods {
		out = append(out, toModDTO(m))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "mods": out})
}

// PresignedURL exchanges fileName and fileType query params for an upload
// URL and the durable key.
func (h *Handler) PresignedURL(c *gin.Context) {
	fileName := c.Query("fileName")
	if fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "fileName is required"})
		return
	}

	url, key, err := h.presign.GetPresignedPutURL(c.Request.Context(), currentUserID(c), fileName, c.Query("fileType"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url, "key": key})
}

// fail maps service errors onto wire responses. Not-found keeps a 200 with
// success:false so ownership probes and missing rows look identical.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "entry not found"})
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}
