package http

import (
	"fmt"
	"io"
	"mime"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocky-api/internal/application/usecase"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/pkg/logger"
)

// FileHandler adjuntos de órdenes, artículos, seriales y asignaciones.
type FileHandler struct {
	uc       *usecase.FileUseCase
	maxBytes int64
	log      *logger.Logger
}

// NewFileHandler construye el handler. maxBytes acota la lectura del multipart.
func NewFileHandler(uc *usecase.FileUseCase, maxBytes int64, log *logger.Logger) *FileHandler {
	return &FileHandler{uc: uc, maxBytes: maxBytes, log: log}
}

// Upload godoc
// @Summary      Adjuntar un archivo a una entidad
// @Tags         files
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        entity_type  formData  string  true  "order | item | serial | assignment"
// @Param        entity_id    formData  string  true  "ID de la entidad"
// @Param        file         formData  file    true  "Archivo"
// @Success      201  {object}  dto.FileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/files [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "VALIDATION", "campo file requerido")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return respondError(c, h.log, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, h.maxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("abrir archivo: %w", err))
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, h.log, fmt.Errorf("leer archivo: %w", err))
	}

	mt := fh.Header.Get("Content-Type")
	if mt == "" || mt == "application/octet-stream" {
		mt = mimetype.Detect(content).String()
	}
	out, err := h.uc.Upload(c.Context(), GetUserID(c), usecase.UploadInput{
		EntityType: c.FormValue("entity_type"),
		EntityID:   c.FormValue("entity_id"),
		Filename:   fh.Filename,
		Mime:       mt,
		Content:    content,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar adjuntos (solo metadatos)
// @Tags         files
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Tipo de entidad"
// @Param        entity_id    query  string  false  "ID de la entidad"
// @Success      200  {array}  dto.FileResponse
// @Router       /api/files [get]
func (h *FileHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar un adjunto
// @Tags         files
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID del archivo"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/files/{id}/download [get]
func (h *FileHandler) Download(c *fiber.Ctx) error {
	f, err := h.uc.Download(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, f.Mime)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}))
	return c.Send(f.Content)
}

// Delete godoc
// @Summary      Borrar un adjunto
// @Tags         files
// @Security     Bearer
// @Param        id   path  string  true  "ID del archivo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
