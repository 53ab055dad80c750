package dto

// BalanceQuery filtros del dashboard (query string).
type BalanceQuery struct {
	BaseID      int64  `query:"base_id"`
	EquipmentID *int64 `query:"equipment_id"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
}

// BalanceFilters eco de los filtros aplicados.
type BalanceFilters struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// BalanceResponse balance de una base para un período.
type BalanceResponse struct {
	BaseID         int64          `json:"base_id"`
	EquipmentID    *int64         `json:"equipment_id"`
	OpeningBalance int64          `json:"opening_balance"`
	Purchases      int64          `json:"purchases"`
	TransferIn     int64          `json:"transfer_in"`
	TransferOut    int64          `json:"transfer_out"`
	Assigned       int64          `json:"assigned"`
	Expended       int64          `json:"expended"`
	NetMovement    int64          `json:"net_movement"`
	ClosingBalance int64          `json:"closing_balance"`
	Filters        BalanceFilters `json:"filters"`
}

// EquipmentBalanceItem fila del desglose por tipo de equipo.
type EquipmentBalanceItem struct {
	EquipmentID    int64  `json:"equipment_id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Unit           string `json:"unit"`
	OpeningBalance int64  `json:"opening_balance"`
	NetMovement    int64  `json:"net_movement"`
	Assigned       int64  `json:"assigned"`
	Expended       int64  `json:"expended"`
	ClosingBalance int64  `json:"closing_balance"`
}

// EquipmentBreakdownResponse balance de la base desglosado por equipo.
type EquipmentBreakdownResponse struct {
	BaseID   int64                  `json:"base_id"`
	BaseName string                 `json:"base_name"`
	Items    []EquipmentBalanceItem `json:"items"`
	Totals   BalanceResponse        `json:"totals"`
}
