package movement

import (
	"github.com/jhoicas/Intendencia-api/internal/application/dto"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// Conversión entre DTOs HTTP y entradas/registros del caso de uso.

func PurchaseFromRequest(req dto.CreatePurchaseRequest) (PurchaseInput, error) {
	d, err := dto.ParseOptionalDate(req.PurchaseDate)
	if err != nil {
		return PurchaseInput{}, err
	}
	return PurchaseInput{BaseID: req.BaseID, EquipmentID: req.EquipmentID, Quantity: req.Quantity, Date: d}, nil
}

func TransferFromRequest(req dto.CreateTransferRequest) (TransferInput, error) {
	d, err := dto.ParseOptionalDate(req.TransferDate)
	if err != nil {
		return TransferInput{}, err
	}
	return TransferInput{
		FromBaseID:  req.FromBaseID,
		ToBaseID:    req.ToBaseID,
		EquipmentID: req.EquipmentID,
		Quantity:    req.Quantity,
		Date:        d,
	}, nil
}

func AssignmentFromRequest(req dto.CreateAssignmentRequest) (AssignmentInput, error) {
	d, err := dto.ParseOptionalDate(req.AssignedDate)
	if err != nil {
		return AssignmentInput{}, err
	}
	return AssignmentInput{
		BaseID:        req.BaseID,
		EquipmentID:   req.EquipmentID,
		PersonnelName: req.PersonnelName,
		Quantity:      req.Quantity,
		Date:          d,
	}, nil
}

func ExpenditureFromRequest(req dto.CreateExpenditureRequest) (ExpenditureInput, error) {
	d, err := dto.ParseOptionalDate(req.ExpendedDate)
	if err != nil {
		return ExpenditureInput{}, err
	}
	return ExpenditureInput{BaseID: req.BaseID, EquipmentID: req.EquipmentID, Quantity: req.Quantity, Date: d}, nil
}

func OpeningStockFromRequest(req dto.CreateOpeningStockRequest) (OpeningStockInput, error) {
	d, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		return OpeningStockInput{}, err
	}
	return OpeningStockInput{BaseID: req.BaseID, EquipmentID: req.EquipmentID, Quantity: req.Quantity, Date: d}, nil
}

// ListQueryFromRequest interpreta los filtros de query string.
func ListQueryFromRequest(req dto.MovementListQuery) (ListQuery, error) {
	r, err := dto.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return ListQuery{}, err
	}
	return ListQuery{
		BaseID:      req.BaseID,
		EquipmentID: req.EquipmentID,
		Range:       r,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}, nil
}

func OpeningStockResponse(r *entity.OpeningStock) dto.MovementResponse {
	return dto.MovementResponse{
		ID: r.ID, Kind: entity.MovementOpening, BaseID: r.BaseID, EquipmentID: r.EquipmentID,
		Quantity: r.Quantity, Date: r.Date.Format(entity.DateLayout), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

func PurchaseResponse(r *entity.Purchase) dto.MovementResponse {
	return dto.MovementResponse{
		ID: r.ID, Kind: entity.MovementPurchase, BaseID: r.BaseID, EquipmentID: r.EquipmentID,
		Quantity: r.Quantity, Date: r.Date.Format(entity.DateLayout), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

func TransferResponse(r *entity.Transfer) dto.MovementResponse {
	return dto.MovementResponse{
		ID: r.ID, Kind: entity.MovementTransfer, FromBaseID: r.FromBaseID, ToBaseID: r.ToBaseID, EquipmentID: r.EquipmentID,
		Quantity: r.Quantity, Date: r.Date.Format(entity.DateLayout), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

func AssignmentResponse(r *entity.Assignment) dto.MovementResponse {
	return dto.MovementResponse{
		ID: r.ID, Kind: entity.MovementAssignment, BaseID: r.BaseID, EquipmentID: r.EquipmentID, PersonnelName: r.PersonnelName,
		Quantity: r.Quantity, Date: r.Date.Format(entity.DateLayout), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

func ExpenditureResponse(r *entity.Expenditure) dto.MovementResponse {
	return dto.MovementResponse{
		ID: r.ID, Kind: entity.MovementExpenditure, BaseID: r.BaseID, EquipmentID: r.EquipmentID,
		Quantity: r.Quantity, Date: r.Date.Format(entity.DateLayout), CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

// ListResponse convierte una página de registros con la función de mapeo indicada.
func ListResponse[T any](items []T, f func(T) dto.MovementResponse, limit, offset int) dto.MovementListResponse {
	out := make([]dto.MovementResponse, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return dto.MovementListResponse{Items: out, Page: dto.PageResponse{Limit: limit, Offset: offset}}
}
