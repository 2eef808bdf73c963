package dto

import (
	"github.com/jhoicas/stocky-api/internal/domain/entity"
)

// ToSupplierResponse mapea un proveedor.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Contact: s.Contact,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: s.Address,
	}
}

// ToItemResponse mapea un artículo con su stock ya calculado.
func ToItemResponse(i *entity.Item, stock int) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		Category:          i.Category,
		InternalRef:       i.InternalRef,
		DefaultSupplierID: i.DefaultSupplierID,
		DefaultUnitPrice:  i.DefaultUnitPrice,
		Site:              i.Site,
		LowStockThreshold: i.LowStockThreshold,
		Notes:             i.Notes,
		Stock:             stock,
		CreatedAt:         i.CreatedAt,
	}
}

// ToSerialResponse mapea un serial.
func ToSerialResponse(s *entity.Serial) SerialResponse {
	status, assignee := entity.StateColumns(s.State)
	return SerialResponse{
		ID:                    s.ID,
		ItemID:                s.ItemID,
		SerialNumber:          s.SerialNumber,
		DeliveryID:            s.DeliveryID,
		SupplierID:            s.SupplierID,
		DeliveryDate:          DatePtr(s.DeliveryDate),
		WarrantyStart:         DatePtr(s.WarrantyStart),
		WarrantyEnd:           DatePtr(s.WarrantyEnd),
		PurchasePrice:         s.PurchasePrice,
		Status:                string(status),
		CurrentAssigneeUserID: assignee,
	}
}

// ToAssignmentResponse mapea una asignación.
func ToAssignmentResponse(a *entity.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:                 a.ID,
		SerialID:           a.SerialID,
		AssigneeUserID:     a.AssigneeUserID,
		StartDate:          NewDate(a.StartDate),
		ExpectedReturnDate: DatePtr(a.ExpectedReturnDate),
		EndDate:            DatePtr(a.EndDate),
		Notes:              a.Notes,
		DocumentFileID:     a.DocumentFileID,
	}
}

// ToFileResponse mapea los metadatos de un adjunto.
func ToFileResponse(f *entity.StoredFile) FileResponse {
	return FileResponse{
		ID:          f.ID,
		EntityType:  f.EntityType,
		EntityID:    f.EntityID,
		Filename:    f.Filename,
		Mime:        f.Mime,
		Size:        f.Size,
		DownloadURL: "/api/files/" + f.ID + "/download",
		CreatedAt:   f.CreatedAt,
	}
}

// ToUserResponse mapea un usuario.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Department:  u.Department,
		Site:        u.Site,
		Role:        u.Role,
	}
}
