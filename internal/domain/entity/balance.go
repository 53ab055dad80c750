package entity

// BalanceReport es el balance de una base (y opcionalmente un equipo) para un período.
// Es un valor derivado y transitorio; el llamador es su dueño.
type BalanceReport struct {
	BaseID      int64
	EquipmentID *int64
	Range       DateRange

	Opening     int64
	Purchases   int64
	TransferIn  int64
	TransferOut int64
	Assigned    int64
	Expended    int64
	NetMovement int64 // Purchases + TransferIn - TransferOut
	Closing     int64 // Opening + NetMovement - Assigned - Expended
}
