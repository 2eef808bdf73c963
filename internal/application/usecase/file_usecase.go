package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stocky-api/internal/application/activity"
	"github.com/jhoicas/stocky-api/internal/application/dto"
	"github.com/jhoicas/stocky-api/internal/application/ports"
	"github.com/jhoicas/stocky-api/internal/domain"
	"github.com/jhoicas/stocky-api/internal/domain/entity"
	"github.com/jhoicas/stocky-api/internal/domain/repository"
)

// UploadInput archivo recibido para adjuntar a una entidad.
type UploadInput struct {
	EntityType string
	EntityID   string
	Filename   string
	Mime       string
	Content    []byte
}

// FileUseCase adjuntos (albaranes, facturas, actas de entrega) de órdenes,
// artículos, seriales y asignaciones.
type FileUseCase struct {
	txRunner ports.TxRunner
	files    repository.FileRepository
	recorder *activity.Recorder
	maxBytes int64
}

// NewFileUseCase construye el caso de uso. maxBytes <= 0 desactiva el límite.
func NewFileUseCase(txRunner ports.TxRunner, files repository.FileRepository, recorder *activity.Recorder, maxBytes int64) *FileUseCase {
	return &FileUseCase{txRunner: txRunner, files: files, recorder: recorder, maxBytes: maxBytes}
}

// Upload guarda el archivo. La entidad referenciada debe existir.
// Un adjunto de asignación queda como su documento.
func (uc *FileUseCase) Upload(ctx context.Context, actorID string, in UploadInput) (*dto.FileResponse, error) {
	if !isAttachable(in.EntityType) {
		return nil, fmt.Errorf("%w: tipo de entidad %q no admite adjuntos", domain.ErrInvalidInput, in.EntityType)
	}
	if in.EntityID == "" {
		return nil, fmt.Errorf("%w: entity_id es obligatorio", domain.ErrInvalidInput)
	}
	name := filepath.Base(strings.TrimSpace(in.Filename))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: nombre de archivo vacío", domain.ErrInvalidInput)
	}
	if len(in.Content) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if uc.maxBytes > 0 && int64(len(in.Content)) > uc.maxBytes {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, uc.maxBytes)
	}
	mime := in.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}

	file := &entity.StoredFile{
		ID:         uuid.New().String(),
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Filename:   name,
		Mime:       mime,
		Size:       int64(len(in.Content)),
		Content:    in.Content,
		CreatedAt:  time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		found, err := entityExists(ctx, r, in.EntityType, in.EntityID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s %s", domain.ErrNotFound, in.EntityType, in.EntityID)
		}
		if err := r.Files.Create(ctx, file); err != nil {
			return err
		}
		if in.EntityType == entity.FileEntityAssignment {
			if err := r.Assignments.SetDocument(ctx, in.EntityID, file.ID); err != nil {
				return err
			}
		}
		uc.recorder.Record(ctx, r.Activity, entity.ActivityFile, file.ID, "upload", actorID, map[string]any{
			"entity_type": file.EntityType,
			"entity_id":   file.EntityID,
			"filename":    file.Filename,
			"size":        file.Size,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToFileResponse(file)
	return &out, nil
}

// List metadatos de los adjuntos de una entidad (vacíos = todos), más recientes primero.
func (uc *FileUseCase) List(ctx context.Context, entityType, entityID string) ([]dto.FileResponse, error) {
	if entityType != "" && !isAttachable(entityType) {
		return nil, fmt.Errorf("%w: tipo de entidad %q", domain.ErrInvalidInput, entityType)
	}
	list, err := uc.files.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FileResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.ToFileResponse(f))
	}
	return out, nil
}

// Download devuelve el archivo con su contenido.
func (uc *FileUseCase) Download(ctx context.Context, id string) (*entity.StoredFile, error) {
	f, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: archivo %s", domain.ErrNotFound, id)
	}
	return f, nil
}

// Delete elimina un adjunto.
func (uc *FileUseCase) Delete(ctx context.Context, actorID, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.Repositories) error {
		deleted, err := r.Files.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: archivo %s", domain.ErrNotFound, id)
		}
		uc.recorder.Record(ctx, r.Activity, entity.ActivityFile, id, "delete", actorID, nil)
		return nil
	})
}

func isAttachable(entityType string) bool {
	switch entityType {
	case entity.FileEntityOrder, entity.FileEntityItem, entity.FileEntitySerial, entity.FileEntityAssignment:
		return true
	}
	return false
}

func entityExists(ctx context.Context, r ports.Repositories, entityType, id string) (bool, error) {
	switch entityType {
	case entity.FileEntityOrder:
		o, err := r.Orders.GetByID(ctx, id)
		return o != nil, err
	case entity.FileEntityItem:
		i, err := r.Items.GetByID(ctx, id)
		return i != nil, err
	case entity.FileEntitySerial:
		s, err := r.Serials.GetByID(ctx, id)
		return s != nil, err
	case entity.FileEntityAssignment:
		a, err := r.Assignments.GetByID(ctx, id)
		return a != nil, err
	}
	return false, nil
}
